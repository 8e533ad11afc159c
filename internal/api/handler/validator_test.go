package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&createListingRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "regularPrice is required")
	assert.Contains(t, err.Error(), "imageUrls is required")
}

func TestValidator_ImageURL(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&updateUserRequest{Avatar: "https://cdn.example.com/me.png"}))

	err := v.Validate(&updateUserRequest{Avatar: "ftp://cdn.example.com/me.png"})
	require.Error(t, err)
	assert.Equal(t, "avatar must be a valid image URL", err.Error())
}

func TestValidator_NegativeNumbers(t *testing.T) {
	v := NewValidator()
	bedrooms := -1

	err := v.Validate(&updateListingRequest{Bedrooms: &bedrooms})
	require.Error(t, err)
	assert.Equal(t, "bedrooms must be at least 0", err.Error())
}

func TestValidator_EmptyPatchIsValid(t *testing.T) {
	assert.NoError(t, NewValidator().Validate(&updateListingRequest{}))
}
