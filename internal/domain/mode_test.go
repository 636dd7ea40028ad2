package domain

import (
	"reflect"
	"testing"
)

func TestDetectMode(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		mode          string
		reminderToken string
		want          Mode
		wantErr       bool
	}{
		{
			name: "no parameters means create",
			want: Create{},
		},
		{
			name: "id alone means edit",
			id:   "bm1",
			want: Edit{ID: "bm1"},
		},
		{
			name: "explicit edit mode",
			id:   "bm1",
			mode: "edit",
			want: Edit{ID: "bm1"},
		},
		{
			name: "remind mode means dashboard reschedule",
			id:   "bm1",
			mode: "remind",
			want: RescheduleDashboard{ID: "bm1"},
		},
		{
			name:          "reminder token wins over everything",
			id:            "bm1",
			mode:          "edit",
			reminderToken: "tok123",
			want:          RescheduleEmailLink{Token: "tok123"},
		},
		{
			name:          "reminder token without id",
			reminderToken: "tok123",
			want:          RescheduleEmailLink{Token: "tok123"},
		},
		{
			name:    "unknown mode with id is an error",
			id:      "bm1",
			mode:    "clone",
			wantErr: true,
		},
		{
			name: "unknown mode without id still creates",
			mode: "clone",
			want: Create{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectMode(tt.id, tt.mode, tt.reminderToken)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DetectMode(%q, %q, %q) should have failed", tt.id, tt.mode, tt.reminderToken)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectMode(%q, %q, %q) error: %v", tt.id, tt.mode, tt.reminderToken, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectMode(%q, %q, %q) = %#v, want %#v", tt.id, tt.mode, tt.reminderToken, got, tt.want)
			}
		})
	}
}
