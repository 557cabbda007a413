package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID     uuid.UUID `validate:"uuid_required"`
	Domain string    `validate:"required,subdomain"`
}

func TestUUIDRequired(t *testing.T) {
	errs := ValidateStruct(payload{Domain: "acme"})
	require.Len(t, errs, 1)
	assert.Equal(t, "uuid_required", errs[0].Tag)

	errs = ValidateStruct(payload{ID: uuid.New(), Domain: "acme"})
	assert.Empty(t, errs)
}

func TestSubdomain(t *testing.T) {
	valid := []string{"acme", "acme-store", "a", "store42"}
	for _, domain := range valid {
		errs := ValidateStruct(payload{ID: uuid.New(), Domain: domain})
		assert.Empty(t, errs, "expected %q to be a valid subdomain", domain)
	}

	invalid := []string{"Acme", "-acme", "acme-", "ac me", "shop.acme", ""}
	for _, domain := range invalid {
		errs := ValidateStruct(payload{ID: uuid.New(), Domain: domain})
		assert.NotEmpty(t, errs, "expected %q to be rejected", domain)
	}
}
