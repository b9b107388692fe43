package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/SscSPs/site_expense_tracker/internal/middleware"
	"github.com/shopspring/decimal"
)

// ClockFunc returns the current time.
type ClockFunc func() time.Time

// BaseService provides common functionality for all services
type BaseService struct {
	// Clock is nil in production, meaning time.Now.
	Clock ClockFunc
}

// Now returns the current instant in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// parseDate reads a calendar date in the wire layout.
func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a date in YYYY-MM-DD format", apperrors.ErrValidation, field)
	}
	return t, nil
}

// validateMoney rejects non-positive amounts and amounts finer than paise.
func validateMoney(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", apperrors.ErrValidation, field)
	}
	if !domain.HasAtMostPlaces(amount, domain.MoneyPlaces) {
		return fmt.Errorf("%w: %s must have at most %d decimal places", apperrors.ErrValidation, field, domain.MoneyPlaces)
	}
	return nil
}

// validateQuantity rejects non-positive values and values finer than the stored scale.
func validateQuantity(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", apperrors.ErrValidation, field)
	}
	if !domain.HasAtMostPlaces(v, domain.QuantityPlaces) {
		return fmt.Errorf("%w: %s must have at most %d decimal places", apperrors.ErrValidation, field, domain.QuantityPlaces)
	}
	return nil
}
