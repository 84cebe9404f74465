package main

import "testing"

func TestEnvOr(t *testing.T) {
	t.Setenv("MONGO_DB_NAME", "kanban_test")
	if got := envOr("MONGO_DB_NAME", "kanban_db"); got != "kanban_test" {
		t.Fatalf("envOr = %q, want the set value", got)
	}

	t.Setenv("MONGO_DB_NAME", "")
	if got := envOr("MONGO_DB_NAME", "kanban_db"); got != "kanban_db" {
		t.Fatalf("envOr = %q, want the fallback", got)
	}
}
