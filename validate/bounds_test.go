package validate

import (
	"errors"
	"testing"
)

func TestCryptoBoundsPrice(t *testing.T) {
	b := CryptoBounds()

	if err := b.ValidatePrice(50_000.0, "price"); err != nil {
		t.Errorf("50000.0 should pass: %v", err)
	}
	if err := b.ValidatePrice(0.000000001, "price"); err == nil {
		t.Error("1e-9 should fail")
	}
	if err := b.ValidatePrice(20_000_000.0, "price"); err == nil {
		t.Error("2e7 should fail")
	}
	// Closed interval: both endpoints pass.
	if err := b.ValidatePrice(b.MinPrice, "price"); err != nil {
		t.Errorf("min endpoint should pass: %v", err)
	}
	if err := b.ValidatePrice(b.MaxPrice, "price"); err != nil {
		t.Errorf("max endpoint should pass: %v", err)
	}
}

func TestStockBoundsQuantity(t *testing.T) {
	b := StockBounds()
	if err := b.ValidateQuantity(1, "quantity"); err != nil {
		t.Errorf("whole share should pass: %v", err)
	}
	if err := b.ValidateQuantity(0.5, "quantity"); err == nil {
		t.Error("fractional share should fail under stocks preset")
	}
}

func TestBoundsErrorCarriesField(t *testing.T) {
	b := CryptoBounds()
	err := b.ValidateQuantity(-1, "bid_quantity")
	var oob *BoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("expected BoundsError, got %v", err)
	}
	if oob.Field != "bid_quantity" || oob.Value != -1 {
		t.Errorf("diagnostics wrong: %+v", oob)
	}
}

func TestTimestampWindow(t *testing.T) {
	b := CryptoBounds()

	// Mid-2023, inside the 2020..2030 window.
	if err := b.ValidateTimestamp(1_700_000_000_000_000_000); err != nil {
		t.Errorf("2023 timestamp should pass: %v", err)
	}
	// 2019.
	if err := b.ValidateTimestamp(1_546_300_800_000_000_000); err == nil {
		t.Error("2019 timestamp should fail")
	}
	// 2031.
	if err := b.ValidateTimestamp(1_925_000_000_000_000_000); err == nil {
		t.Error("2031 timestamp should fail")
	}
}

func TestPreset(t *testing.T) {
	if _, err := Preset("crypto"); err != nil {
		t.Errorf("crypto preset: %v", err)
	}
	if _, err := Preset("stocks"); err != nil {
		t.Errorf("stocks preset: %v", err)
	}
	if _, err := Preset("commodities"); err == nil {
		t.Error("unknown preset should fail")
	}
}
