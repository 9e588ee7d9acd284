// Package service holds the business flows behind the HTTP API. Services
// receive their repositories at construction time and never reach for globals.
package service

import (
	"time"

	"goldenspoon-backend/internal/apperr"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const msgInvalidInput = "Please give valid inputs"

func validateInput(in any) error {
	if err := validate.Struct(in); err != nil {
		return &apperr.Error{Kind: apperr.KindValidation, Message: msgInvalidInput, Err: err}
	}
	return nil
}

// parseUserID turns the subject of a verified token into a store key.
func parseUserID(userID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, apperr.Forbidden("Forbidden: invalid or expired")
	}
	return id, nil
}

type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
