// Package models defines the canonical DTOs exchanged with the pet-manager
// API. The backend names fields inconsistently; these structs hold the
// normalized shape produced by package normalize, with the canonical
// Portuguese field names on the wire tags.
package models

// Pet is an animal registered in the system. A pet has at most one tutor
// at a time; TutorID is zero when unlinked. Tutor is non-nil only when the
// backend nested the tutor object inline.
type Pet struct {
	ID      int64  `json:"id"`
	Nome    string `json:"nome"`
	Especie string `json:"especie"`
	Raca    string `json:"raca,omitempty"`
	Idade   int    `json:"idade,omitempty"`
	TutorID int64  `json:"tutorId,omitempty"`
	Tutor   *Tutor `json:"tutor,omitempty"`
	URLFoto string `json:"urlFoto,omitempty"`
}

// Tutor is an owner. Pets may be partially populated: the backend sometimes
// nests them inline and sometimes omits them entirely.
type Tutor struct {
	ID       int64  `json:"id"`
	Nome     string `json:"nome"`
	Telefone string `json:"telefone,omitempty"`
	Endereco string `json:"endereco,omitempty"`
	URLFoto  string `json:"urlFoto,omitempty"`
	Pets     []Pet  `json:"pets,omitempty"`
}

// PetForm is the request payload for creating or updating a pet.
type PetForm struct {
	Nome    string `json:"nome"`
	Especie string `json:"especie"`
	Raca    string `json:"raca"`
	Idade   int    `json:"idade"`
}

// TutorForm is the request payload for creating or updating a tutor.
type TutorForm struct {
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco"`
}

// Page is one page of a paginated listing.
//
// Invariant: TotalPages == ceil(TotalElements/Size) when Size > 0, and
// len(Content) <= Size.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalPages    int
	TotalElements int
}

// User is the session record: who is logged in and with which tokens.
// It is owned by the session store and persisted as a single serialized
// record under one storage key.
type User struct {
	Username     string `json:"username"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Health statuses reported by the backend health endpoints.
const (
	StatusUp      = "UP"
	StatusDown    = "DOWN"
	StatusUnknown = "UNKNOWN"
)

// HealthStatus is the aggregate health report.
type HealthStatus struct {
	Status string        `json:"status"`
	Checks []HealthCheck `json:"checks,omitempty"`
}

// HealthCheck is a single named probe inside a health report.
type HealthCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}
