package domain

import "time"

// Snapshot é uma cópia consistente e somente leitura de todas as coleções
// em um instante. Nunca deve ser alterada depois de publicada.
type Snapshot struct {
	Version        uint64          `json:"version"`
	TakenAt        time.Time       `json:"taken_at"`
	Sales          []Sale          `json:"sales"`
	Clients        []Client        `json:"clients"`
	Collaborators  []Collaborator  `json:"collaborators"`
	Products       []Product       `json:"products"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
	Vehicles       []Vehicle       `json:"vehicles"`
}

func (s *Snapshot) CollaboratorsByID() map[string]Collaborator {
	byID := make(map[string]Collaborator, len(s.Collaborators))
	for _, c := range s.Collaborators {
		byID[c.ID] = c
	}
	return byID
}

func (s *Snapshot) ProductsByID() map[string]Product {
	byID := make(map[string]Product, len(s.Products))
	for _, p := range s.Products {
		byID[p.ID] = p
	}
	return byID
}

func (s *Snapshot) ClientsByID() map[string]Client {
	byID := make(map[string]Client, len(s.Clients))
	for _, c := range s.Clients {
		byID[c.ID] = c
	}
	return byID
}
