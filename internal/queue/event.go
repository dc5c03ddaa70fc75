// Package queue defines message payloads exchanged over the message broker.
package queue

// RSVPSubmittedEvent is published every time a guest answers (or
// re-answers) the public RSVP. It carries enough information for
// downstream consumers to build an audit trail without querying the
// primary database.
type RSVPSubmittedEvent struct {
    GuestID         uint64 `json:"guest_id"`
    UUID            string `json:"uuid"`
    Codigo          string `json:"codigo"`
    Nombres         string `json:"nombres"`
    Estado          string `json:"estado"`
    CantidadAdultos int    `json:"cantidad_adultos"`
    CantidadNinos   int    `json:"cantidad_ninos"`
    SubmittedAt     string `json:"submitted_at"`
}
