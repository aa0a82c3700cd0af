package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveDate(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		value  interface{}
		want   time.Time
		wantOK bool
	}{
		{name: "nil", value: nil, wantOK: false},
		{name: "go time", value: want, want: want, wantOK: true},
		{name: "zero go time", value: time.Time{}, wantOK: false},
		{name: "pointer", value: &want, want: want, wantOK: true},
		{name: "nil pointer", value: (*time.Time)(nil), wantOK: false},
		{name: "mongo date", value: primitive.NewDateTimeFromTime(want), want: want, wantOK: true},
		{name: "date string", value: "2024-03-05", want: want, wantOK: true},
		{name: "rfc3339 string", value: "2024-03-05T00:00:00Z", want: want, wantOK: true},
		{name: "garbage string", value: "next tuesday", wantOK: false},
		{name: "number", value: 1234, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveDate(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			}
		})
	}
}
