package repository

import "testing"

func TestNewRepositoriesRequiresDB(t *testing.T) {
	if _, err := NewRepositories(nil); err == nil {
		t.Fatal("nil database should be rejected")
	}
}
