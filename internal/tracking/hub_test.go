package tracking

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"transit/internal/repositories"
)

func TestUpsertQuantizesBeforeStoring(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hub := Hub{
		LocationRepo: repositories.LocationRepository{DB: db},
		Registry:     NewRegistry(),
		DB:           db,
	}

	mock.ExpectExec("INSERT INTO live_bus_locations").
		WithArgs(int64(7), 28.613945, 77.209022, 45.0, 270.0).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := hub.Upsert(7, 28.61394512, 77.20902177, 43.2, 273.0); err != nil {
		t.Fatalf("upsert error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsertTwiceKeepsSingleRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hub := Hub{
		LocationRepo: repositories.LocationRepository{DB: db},
		Registry:     NewRegistry(),
		DB:           db,
	}

	// Both writes go through the same single-row upsert; the second hits
	// ON DUPLICATE KEY UPDATE and reports the overwrite.
	mock.ExpectExec("ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := hub.Upsert(7, 10, 20, 30, 40); err != nil {
		t.Fatalf("first upsert error: %v", err)
	}
	if err := hub.Upsert(7, 11, 21, 31, 41); err != nil {
		t.Fatalf("second upsert error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsertRejectsOutOfRangeCoordinates(t *testing.T) {
	hub := Hub{Registry: NewRegistry()}
	if err := hub.Upsert(7, 95, 0, 0, 0); err == nil {
		t.Fatal("expected error for latitude out of range")
	}
	if err := hub.Upsert(7, 0, -185, 0, 0); err == nil {
		t.Fatal("expected error for longitude out of range")
	}
}

func TestPublishBroadcastsStoredLocation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	reg := NewRegistry()
	sub := &fakeConn{}
	reg.Register(sub)

	hub := Hub{
		LocationRepo: repositories.LocationRepository{DB: db},
		Registry:     reg,
		DB:           db,
	}

	mock.ExpectQuery("FROM live_bus_locations").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"bus_id", "latitude", "longitude", "speed", "heading", "last_updated"}).
			AddRow(7, 28.613945, 77.209022, 45.0, 270.0, time.Now()))

	sent, err := hub.Publish(7)
	if err != nil {
		t.Fatalf("publish error: %v", err)
	}
	if !sent {
		t.Fatal("publish reported no broadcast for a stored location")
	}

	got := sub.received()
	if len(got) != 1 {
		t.Fatalf("subscriber received %d messages, want 1", len(got))
	}

	var msg map[string]any
	if err := json.Unmarshal([]byte(got[0]), &msg); err != nil {
		t.Fatalf("broadcast payload is not JSON: %v", err)
	}
	if msg["bus_id"] != float64(7) || msg["latitude"] != 28.613945 || msg["speed"] != 45.0 {
		t.Fatalf("unexpected broadcast payload: %s", got[0])
	}
	if _, ok := msg["heading"]; ok {
		t.Fatal("broadcast payload should not carry heading")
	}
}

func TestPublishWithoutStoredLocation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	reg := NewRegistry()
	sub := &fakeConn{}
	reg.Register(sub)

	hub := Hub{
		LocationRepo: repositories.LocationRepository{DB: db},
		Registry:     reg,
		DB:           db,
	}

	mock.ExpectQuery("FROM live_bus_locations").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"bus_id", "latitude", "longitude", "speed", "heading", "last_updated"}))

	sent, err := hub.Publish(99)
	if err != nil {
		t.Fatalf("publish error: %v", err)
	}
	if sent {
		t.Fatal("publish reported a broadcast for a missing location")
	}
	if got := sub.received(); len(got) != 0 {
		t.Fatalf("subscriber received %v, want nothing", got)
	}
}

func TestEchoPrefixesAndFansOut(t *testing.T) {
	reg := NewRegistry()
	conns := []*fakeConn{{}, {}, {}}
	for _, c := range conns {
		reg.Register(c)
	}

	hub := Hub{Registry: reg}
	hub.Echo("ping")

	for i, c := range conns {
		got := c.received()
		if len(got) != 1 || got[0] != "Message: ping" {
			t.Errorf("subscriber %d received %v, want [Message: ping]", i, got)
		}
	}
}
