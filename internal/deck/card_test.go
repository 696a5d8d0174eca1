package deck

import "testing"

func TestFaceValues(t *testing.T) {
	tests := []struct {
		face Face
		hard int
		soft int
	}{
		{Two, 2, 2},
		{Three, 3, 3},
		{Four, 4, 4},
		{Five, 5, 5},
		{Six, 6, 6},
		{Seven, 7, 7},
		{Eight, 8, 8},
		{Nine, 9, 9},
		{Ten, 10, 10},
		{Jack, 10, 10},
		{Queen, 10, 10},
		{King, 10, 10},
		{Ace, 1, 11},
	}

	for _, tt := range tests {
		if got := tt.face.HardValue(); got != tt.hard {
			t.Errorf("%s: expected hard value %d, got %d", tt.face, tt.hard, got)
		}
		if got := tt.face.SoftValue(); got != tt.soft {
			t.Errorf("%s: expected soft value %d, got %d", tt.face, tt.soft, got)
		}
	}
}

func TestCardString(t *testing.T) {
	card := NewCard(Ace, Spades)
	if card.String() != "A♠" {
		t.Errorf("Expected A♠, got %s", card.String())
	}

	card = NewCard(Ten, Hearts)
	if card.String() != "T♥" {
		t.Errorf("Expected T♥, got %s", card.String())
	}
}

func TestSuitColors(t *testing.T) {
	if !NewCard(King, Hearts).IsRed() {
		t.Error("Hearts should be red")
	}
	if !NewCard(King, Diamonds).IsRed() {
		t.Error("Diamonds should be red")
	}
	if NewCard(King, Spades).IsRed() {
		t.Error("Spades should not be red")
	}
	if NewCard(King, Clubs).IsRed() {
		t.Error("Clubs should not be red")
	}
}

func TestIsAce(t *testing.T) {
	if !NewCard(Ace, Clubs).IsAce() {
		t.Error("Ace should report IsAce")
	}
	if NewCard(King, Clubs).IsAce() {
		t.Error("King should not report IsAce")
	}
}
