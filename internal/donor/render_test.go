package donor

import (
	"context"
	"testing"
)

func TestRowsProjection(t *testing.T) {
	state := NewState(staticSource([]Campaign{
		{ID: "1", Title: "Sangue pela Vida", BloodType: "O+", Status: "Ativa", GoalDonors: 50},
		{ID: "2", Title: "Já Participando", BloodType: "Todos", Status: "Ativa"},
		{ID: "3", Title: "Campanha Antiga", BloodType: "A-", Status: "Encerrada"},
	}, []string{"2"}))
	if err := state.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	rows := Rows(state)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	joinable := rows[0]
	if joinable.ButtonLabel != "Participar" || !joinable.ButtonEnabled || joinable.RowHighlighted {
		t.Fatalf("joinable row rendered wrong: %+v", joinable)
	}

	joined := rows[1]
	if joined.ButtonLabel != "Participando ✓" || joined.ButtonEnabled || !joined.RowHighlighted {
		t.Fatalf("joined row rendered wrong: %+v", joined)
	}

	closed := rows[2]
	if closed.ButtonLabel != "Encerrada" || closed.ButtonEnabled {
		t.Fatalf("closed row rendered wrong: %+v", closed)
	}
}

func TestRowsPreserveServerOrder(t *testing.T) {
	state := NewState(staticSource([]Campaign{
		activeCampaign("9", "Zeta"),
		activeCampaign("1", "Alfa"),
		activeCampaign("5", "Meio"),
	}, nil))
	if err := state.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	rows := Rows(state)
	want := []string{"9", "1", "5"}
	for i, id := range want {
		if rows[i].CampaignID != id {
			t.Fatalf("row %d has id %q, want %q (server order must be preserved)", i, rows[i].CampaignID, id)
		}
	}
}

func TestRowsPendingDisablesButton(t *testing.T) {
	state := NewState(staticSource([]Campaign{activeCampaign("1", "A")}, nil))
	if err := state.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !state.beginSubmit("1") {
		t.Fatal("beginSubmit")
	}
	defer state.endSubmit("1")

	rows := Rows(state)
	if rows[0].ButtonLabel != "Participar" || rows[0].ButtonEnabled {
		t.Fatalf("pending row must keep the label but disable the button: %+v", rows[0])
	}
}

func TestRowsEmptySnapshotRendersPlaceholder(t *testing.T) {
	state := NewState(staticSource(nil, nil))
	if err := state.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	rows := Rows(state)
	if len(rows) != 1 || !rows[0].Placeholder {
		t.Fatalf("expected a single placeholder row, got %+v", rows)
	}
}
