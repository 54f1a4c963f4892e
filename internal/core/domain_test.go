package core

import "testing"

func TestDonationValidate(t *testing.T) {
	valid := Donation{
		PayeeID:      "11-1111111",
		Organization: "Charity A",
		Sector:       "Education",
		Amount:       Money{Cents: 100000},
		Date:         NewDate(2024, 1, 15),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid donation rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Donation)
		want   error
	}{
		{"empty payee id", func(d *Donation) { d.PayeeID = "  " }, ErrEmptyPayeeID},
		{"zero date", func(d *Donation) { d.Date = Date{} }, ErrInvalidDate},
		{"negative amount", func(d *Donation) { d.Amount = Money{Cents: -1} }, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			if err := d.Validate(); err != tt.want {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"01/15/2024", NewDate(2024, 1, 15), false},
		{"1/5/2024", NewDate(2024, 1, 5), false},
		{"2024-01-15", NewDate(2024, 1, 15), false},
		{"15/01/2024", Date{}, true},
		{"", Date{}, true},
		{"not a date", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) = %v", tt.in, err)
			}
			if !got.Equal(tt.want.Time) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDateString(t *testing.T) {
	if got := NewDate(2024, 3, 7).String(); got != "03/07/2024" {
		t.Errorf("String() = %q, want %q", got, "03/07/2024")
	}
}

func TestScheduleIsRecurring(t *testing.T) {
	cases := []struct {
		schedule string
		want     bool
	}{
		{"annually through indefinitely", true},
		{"Semi-Annually through 2026", true},
		{"ANNUALLY", true},
		{"", false},
		{"monthly", false},
		{"one time", false},
	}
	for _, c := range cases {
		d := Donation{Schedule: c.schedule}
		if got := d.ScheduleIsRecurring(); got != c.want {
			t.Errorf("ScheduleIsRecurring(%q) = %v, want %v", c.schedule, got, c.want)
		}
	}
}
