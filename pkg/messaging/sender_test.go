package messaging

import "testing"

func TestTopicNames(t *testing.T) {
	if got := getName("se", Tracking); got != "se_tracking" {
		t.Errorf("expected se_tracking, got %s", got)
	}
	if got := getName("no", CatalogChanged); got != "no_catalog_changed" {
		t.Errorf("expected no_catalog_changed, got %s", got)
	}
}
