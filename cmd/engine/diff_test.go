package engine

import (
	"reflect"
	"testing"
)

func TestDiffRows(t *testing.T) {
	comparable := []string{"Name", "Score"}

	t.Run("Unchanged", func(t *testing.T) {
		rec := diffRows("1", Row{"Name": "Ann", "Score": "10"}, Row{"Name": "Ann", "Score": "10"}, comparable, false)
		if rec.Status != StatusUnchanged {
			t.Fatalf("expected Unchanged, got %s", rec.Status)
		}
		if len(rec.ChangedColumns) != 0 || rec.OldValues != nil {
			t.Fatalf("unexpected record: %+v", rec)
		}
	})

	t.Run("Changed", func(t *testing.T) {
		rec := diffRows("1", Row{"Name": "Ann", "Score": "10"}, Row{"Name": "Ann", "Score": "15"}, comparable, false)
		if rec.Status != StatusChanged {
			t.Fatalf("expected Changed, got %s", rec.Status)
		}
		if !reflect.DeepEqual(rec.ChangedColumns, []string{"Score"}) {
			t.Fatalf("unexpected changed columns: %v", rec.ChangedColumns)
		}
		if rec.OldValues["Score"] != "10" || rec.NewValues["Score"] != "15" {
			t.Fatalf("unexpected values: %+v", rec)
		}
		if _, ok := rec.OldValues["Name"]; ok {
			t.Error("unchanged column should not appear in old/new values")
		}
	})

	t.Run("ChangedColumnOrderFollowsComparable", func(t *testing.T) {
		rec := diffRows("1", Row{"Name": "Ann", "Score": "10"}, Row{"Name": "Bea", "Score": "15"}, comparable, false)
		if !reflect.DeepEqual(rec.ChangedColumns, []string{"Name", "Score"}) {
			t.Fatalf("unexpected changed columns: %v", rec.ChangedColumns)
		}
	})

	t.Run("AbsentDistinctFromEmpty", func(t *testing.T) {
		rec := diffRows("1", Row{"Name": "Ann", "Score": ""}, Row{"Name": "Ann"}, comparable, false)
		if rec.Status != StatusChanged {
			t.Fatalf("absent cell should differ from empty string, got %s", rec.Status)
		}
		if !reflect.DeepEqual(rec.ChangedColumns, []string{"Score"}) {
			t.Fatalf("unexpected changed columns: %v", rec.ChangedColumns)
		}
	})

	t.Run("BothAbsentIsEqual", func(t *testing.T) {
		rec := diffRows("1", Row{"Name": "Ann"}, Row{"Name": "Ann"}, comparable, false)
		if rec.Status != StatusUnchanged {
			t.Fatalf("two absent cells should compare equal, got %s", rec.Status)
		}
	})

	t.Run("UnchangedValuesOnlyOnRequest", func(t *testing.T) {
		rec := diffRows("1", Row{"Name": "Ann", "Score": "10"}, Row{"Name": "Ann", "Score": "15"}, comparable, true)
		if rec.UnchangedValues["Name"] != "Ann" {
			t.Fatalf("expected unchanged value recorded, got %+v", rec.UnchangedValues)
		}
		if _, ok := rec.UnchangedValues["Score"]; ok {
			t.Error("changed column should not appear among unchanged values")
		}
	})
}
