package models

import (
	"testing"
)

func TestAllModels(t *testing.T) {
	models := AllModels()

	if len(models) == 0 {
		t.Error("Expected at least one model")
	}

	for _, model := range models {
		if model == "" {
			t.Error("Model name should not be empty")
		}
	}
}

func TestModelFromName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"fast", Model25Flash},
		{"FLASH", Model25Flash},
		{"lite", Model25FlashLite},
		{"pro", Model25Pro},
		{"gemini-2.5-pro", Model25Pro},
		{"gemini-exp-1206", "gemini-exp-1206"},
		{"", DefaultModel},
		{"   ", DefaultModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModelFromName(tt.name); got != tt.expected {
				t.Errorf("ModelFromName(%q) = %s, want %s", tt.name, got, tt.expected)
			}
		})
	}
}

func TestSender(t *testing.T) {
	tests := []struct {
		sender Sender
		str    string
		label  string
	}{
		{SenderUser, "user", "You"},
		{SenderBot, "bot", "Bot"},
	}

	for _, tt := range tests {
		if tt.sender.String() != tt.str {
			t.Errorf("String() = %s, want %s", tt.sender.String(), tt.str)
		}
		if tt.sender.Label() != tt.label {
			t.Errorf("Label() = %s, want %s", tt.sender.Label(), tt.label)
		}
	}

	if Sender(42).String() != "unknown" {
		t.Error("unexpected sender should stringify as unknown")
	}
}

func TestMessageConstructors(t *testing.T) {
	u := UserMessage("Hi")
	if !u.IsUser() || u.Text != "Hi" {
		t.Errorf("UserMessage = %+v", u)
	}

	b := BotMessage("Hello there")
	if b.IsUser() || b.Sender != SenderBot || b.Text != "Hello there" {
		t.Errorf("BotMessage = %+v", b)
	}
}

func TestAppearance_Toggle(t *testing.T) {
	if AppearanceLight.Toggle() != AppearanceDark {
		t.Error("light should toggle to dark")
	}
	if AppearanceDark.Toggle() != AppearanceLight {
		t.Error("dark should toggle to light")
	}
	if AppearanceLight.Toggle().Toggle() != AppearanceLight {
		t.Error("double toggle should be identity")
	}
}

func TestParseAppearance(t *testing.T) {
	tests := []struct {
		input   string
		want    Appearance
		wantErr bool
	}{
		{"light", AppearanceLight, false},
		{"Dark", AppearanceDark, false},
		{" dark ", AppearanceDark, false},
		{"sepia", AppearanceLight, true},
		{"", AppearanceLight, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAppearance(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAppearance(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAppearance(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPhase_String(t *testing.T) {
	if PhaseIdle.String() != "idle" {
		t.Errorf("PhaseIdle = %s", PhaseIdle)
	}
	if PhaseAwaitingResponse.String() != "awaiting_response" {
		t.Errorf("PhaseAwaitingResponse = %s", PhaseAwaitingResponse)
	}
	if Phase(9).String() != "unknown" {
		t.Error("unexpected phase should stringify as unknown")
	}
}
