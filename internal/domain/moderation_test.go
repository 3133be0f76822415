package domain

import (
	"errors"
	"testing"
)

func TestCheckContentAllowsEmptyText(t *testing.T) {
	if err := CheckContent(""); err != nil {
		t.Fatalf("CheckContent(\"\") returned error: %v", err)
	}
}

func TestCheckContentAllowsJewelryText(t *testing.T) {
	if err := CheckContent("A gold ring with peacock engraving"); err != nil {
		t.Fatalf("CheckContent returned error: %v", err)
	}
}

func TestCheckContentRejectsBannedTerm(t *testing.T) {
	err := CheckContent("a pendant shaped like a Gun")
	if err == nil {
		t.Fatalf("CheckContent expected error for banned term")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("CheckContent error = %v, want ErrInvalidInput", err)
	}
}
