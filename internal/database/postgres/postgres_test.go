package postgres

import (
	"testing"

	"github.com/Rana718/winegen/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCreateTableSQL(t *testing.T) {
	table := types.NewTable("CUSTOMERS",
		types.Column{Name: "customer_id", Kind: types.Integer},
		types.Column{Name: "customer_email", Kind: types.Text, Nullable: true},
		types.Column{Name: "price_eur", Kind: types.Real},
	)
	assert.Equal(t, `CREATE TABLE IF NOT EXISTS "staging"."CUSTOMERS" (
  "customer_id" BIGINT NOT NULL,
  "customer_email" TEXT,
  "price_eur" DOUBLE PRECISION NOT NULL
)`, CreateTableSQL("staging", table))
}

func TestNewDefaultsSchema(t *testing.T) {
	assert.Equal(t, "public", New("").Schema())
	assert.Equal(t, "staging", New("staging").Schema())
}

func TestKindOfOID(t *testing.T) {
	assert.Equal(t, types.Integer, kindOfOID(oidInt8))
	assert.Equal(t, types.Real, kindOfOID(oidFloat8))
	assert.Equal(t, types.Text, kindOfOID(25))
}
