package catalog_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount, currency.EUR)
	require.NoError(t, err)
	return m
}

func testSurcharges(t *testing.T) catalog.SurchargePolicy {
	t.Helper()
	sp, err := catalog.NewSurchargePolicy(money(t, 500), money(t, 1500))
	require.NoError(t, err)
	return sp
}

func TestNewSurchargePolicy(t *testing.T) {
	t.Run("express must exceed urgent", func(t *testing.T) {
		_, err := catalog.NewSurchargePolicy(money(t, 1500), money(t, 500))
		require.ErrorIs(t, err, catalog.ErrSurchargeOrder)

		_, err = catalog.NewSurchargePolicy(money(t, 500), money(t, 500))
		require.ErrorIs(t, err, catalog.ErrSurchargeOrder)
	})

	t.Run("surcharge per tier", func(t *testing.T) {
		sp := testSurcharges(t)

		normal, err := sp.SurchargeFor(kernel.UrgencyNormal)
		require.NoError(t, err)
		assert.True(t, normal.IsZero())

		urgent, err := sp.SurchargeFor(kernel.UrgencyUrgent)
		require.NoError(t, err)
		assert.Equal(t, int64(500), urgent.Amount())

		express, err := sp.SurchargeFor(kernel.UrgencyExpress)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), express.Amount())
	})

	t.Run("unknown tier is rejected", func(t *testing.T) {
		sp := testSurcharges(t)
		_, err := sp.SurchargeFor(kernel.UrgencyUnknown)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var sp catalog.SurchargePolicy
		require.ErrorIs(t, sp.Validate(), catalog.ErrSurchargePolicyIsNotConstructed)

		_, err := sp.SurchargeFor(kernel.UrgencyUrgent)
		require.ErrorIs(t, err, catalog.ErrSurchargePolicyIsNotConstructed)
	})
}

func TestNewDeliveryTerms(t *testing.T) {
	days := []time.Weekday{time.Monday, time.Wednesday, time.Friday}

	t.Run("creates terms with threshold", func(t *testing.T) {
		threshold := money(t, 10000)
		terms, err := catalog.NewDeliveryTerms(money(t, 5000), &threshold, money(t, 800), 2, days, testSurcharges(t))

		require.NoError(t, err)
		got, ok := terms.FreeDeliveryThreshold()
		require.True(t, ok)
		assert.Equal(t, int64(10000), got.Amount())
		assert.Equal(t, 2, terms.LeadTimeDays())
	})

	t.Run("creates terms without threshold", func(t *testing.T) {
		terms, err := catalog.NewDeliveryTerms(money(t, 5000), nil, money(t, 800), 0, days, testSurcharges(t))

		require.NoError(t, err)
		_, ok := terms.FreeDeliveryThreshold()
		assert.False(t, ok)
	})

	t.Run("requires at least one delivery day", func(t *testing.T) {
		_, err := catalog.NewDeliveryTerms(money(t, 5000), nil, money(t, 800), 2, nil, testSurcharges(t))
		require.Error(t, err)
	})

	t.Run("rejects negative lead time", func(t *testing.T) {
		_, err := catalog.NewDeliveryTerms(money(t, 5000), nil, money(t, 800), -1, days, testSurcharges(t))
		require.Error(t, err)
	})

	t.Run("rejects an unconstructed surcharge policy", func(t *testing.T) {
		_, err := catalog.NewDeliveryTerms(money(t, 5000), nil, money(t, 800), 2, days, catalog.SurchargePolicy{})
		require.ErrorIs(t, err, catalog.ErrSurchargePolicyIsNotConstructed)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var terms catalog.DeliveryTerms
		require.ErrorIs(t, terms.Validate(), catalog.ErrDeliveryTermsAreNotConstructed)
	})
}

func TestDeliveryTerms_DeliversOn(t *testing.T) {
	days := []time.Weekday{time.Monday, time.Friday}
	terms, err := catalog.NewDeliveryTerms(money(t, 5000), nil, money(t, 800), 2, days, testSurcharges(t))
	require.NoError(t, err)

	assert.True(t, terms.DeliversOn(time.Monday))
	assert.True(t, terms.DeliversOn(time.Friday))
	assert.False(t, terms.DeliversOn(time.Sunday))
}

func TestDeliveryTerms_EarliestDeliveryDate(t *testing.T) {
	days := []time.Weekday{time.Monday}
	terms, err := catalog.NewDeliveryTerms(money(t, 5000), nil, money(t, 800), 3, days, testSurcharges(t))
	require.NoError(t, err)

	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	earliest := terms.EarliestDeliveryDate(now)

	assert.Equal(t, time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC), earliest)
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product", func(t *testing.T) {
		p, err := catalog.NewProduct(kernel.NewUUID(), "Olive oil 1L", money(t, 1200), 40, 2)

		require.NoError(t, err)
		assert.Equal(t, 40, p.Stock())
		assert.Equal(t, 2, p.MinOrderQuantity())
		require.NoError(t, p.Validate())
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		id := kernel.NewUUID()
		price := money(t, 1200)

		_, err := catalog.NewProduct(id, "", price, 40, 2)
		require.Error(t, err)

		_, err = catalog.NewProduct(id, "Olive oil", price, -1, 2)
		require.Error(t, err)

		_, err = catalog.NewProduct(id, "Olive oil", price, 40, 0)
		require.Error(t, err)
	})
}
