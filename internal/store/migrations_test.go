package store

import (
	"testing"
)

func TestMigrationVersion(t *testing.T) {
	cases := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{name: "migrations/0001_init.sql", want: 1},
		{name: "migrations/0012_add_tags.sql", want: 12},
		{name: "migrations/init.sql", wantErr: true},
		{name: "migrations/x_init.sql", wantErr: true},
	}
	for _, tc := range cases {
		got, err := migrationVersion(tc.name)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("migrationVersion(%s): %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("migrationVersion(%s) = %d, want %d", tc.name, got, tc.want)
		}
	}
}
