package repository

import (
	"strings"
	"testing"
)

func TestFilmFilterClauseEmpty(t *testing.T) {
	where, args := filmFilterClause(FilmFilter{})
	if where != "" || args != nil {
		t.Errorf("empty filter produced %q / %v", where, args)
	}
}

func TestFilmFilterClauseGenreAndRating(t *testing.T) {
	where, args := filmFilterClause(FilmFilter{Genre: "drama", Rating: "teen"})

	if len(args) != 2 {
		t.Fatalf("args = %v, want 2", args)
	}
	if args[0] != "drama" || args[1] != "teen" {
		t.Errorf("args = %v", args)
	}
	if !strings.Contains(where, "g.name = $1") {
		t.Errorf("where %q missing genre placeholder", where)
	}
	if !strings.Contains(where, "f.content_rating = $2") {
		t.Errorf("where %q missing rating placeholder", where)
	}
	if !strings.HasPrefix(where, " WHERE ") {
		t.Errorf("where %q missing WHERE prefix", where)
	}
}

func TestFilmFilterClauseRatingOnly(t *testing.T) {
	where, args := filmFilterClause(FilmFilter{Rating: "adult"})

	if len(args) != 1 || args[0] != "adult" {
		t.Errorf("args = %v", args)
	}
	if !strings.Contains(where, "f.content_rating = $1") {
		t.Errorf("where %q should number from $1", where)
	}
}
