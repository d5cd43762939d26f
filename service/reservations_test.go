package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"cinebook-cli/auth"
)

func TestCreateReservation_PostsExactPayloadOnce(t *testing.T) {
	var attempts int32
	var gotBody map[string]json.RawMessage
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		if r.Method != http.MethodPost || r.URL.Path != "/reservations/" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 1, "booking_reference": "CB-9F3A", "seat_numbers": ["A3", "A4"], "total_price": "27.50", "total_seats": 2}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	session := &auth.Session{Access: "tok"}

	reservation, err := client.CreateReservation(context.Background(), session, 42, []int{3, 4})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected exactly 1 request, got %d", attempts)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("unexpected Authorization header: %q", gotAuth)
	}
	if string(gotBody["showtime_pk"]) != `"42"` {
		t.Fatalf("showtime_pk must be a string, got %s", gotBody["showtime_pk"])
	}
	if string(gotBody["seat_ids"]) != `[3,4]` {
		t.Fatalf("unexpected seat_ids: %s", gotBody["seat_ids"])
	}
	if reservation.BookingReference != "CB-9F3A" {
		t.Fatalf("unexpected booking reference: %q", reservation.BookingReference)
	}
	if reservation.TotalPrice.Float() != 27.50 {
		t.Fatalf("unexpected total price: %v", reservation.TotalPrice)
	}
}

func TestCreateReservation_NeverRetriesFailures(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	session := &auth.Session{Access: "tok"}

	_, err := client.CreateReservation(context.Background(), session, 42, []int{3})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("writes must not retry; got %d attempts", attempts)
	}
}

func TestCreateReservation_PreservesServerDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "Seat already reserved"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	session := &auth.Session{Access: "tok"}

	_, err := client.CreateReservation(context.Background(), session, 42, []int{7})
	if err == nil {
		t.Fatal("expected error")
	}
	if ErrorDetail(err) != "Seat already reserved" {
		t.Fatalf("unexpected detail: %q", ErrorDetail(err))
	}
}

func TestCreateReservation_RequiresSessionAndSeats(t *testing.T) {
	client := NewClient(nil, "http://example.invalid")

	if _, err := client.CreateReservation(context.Background(), nil, 42, []int{1}); err == nil {
		t.Fatal("expected error for anonymous session")
	}
	session := &auth.Session{Access: "tok"}
	if _, err := client.CreateReservation(context.Background(), session, 42, nil); err == nil {
		t.Fatal("expected error for empty seat list")
	}
	if _, err := client.CreateReservation(context.Background(), session, 0, []int{1}); err == nil {
		t.Fatal("expected error for missing showtime id")
	}
}

func TestReservedSeatIds_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/showtimes/42/reserved_seats/" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[7, 12, 30]`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)

	ids, err := client.ReservedSeatIds(context.Background(), nil, 42)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(ids) != 3 || ids[0] != 7 {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestListReservations_RequiresSession(t *testing.T) {
	client := NewClient(nil, "http://example.invalid")
	if _, err := client.ListReservations(context.Background(), nil); err == nil {
		t.Fatal("expected error for anonymous session")
	}
}
