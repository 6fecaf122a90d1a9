package domain

type ClientType string

const (
	ClientTypeIndividual ClientType = "individual"
	ClientTypeEntity     ClientType = "entity"
)

func (t ClientType) Valid() bool {
	return t == ClientTypeIndividual || t == ClientTypeEntity
}

type Address struct {
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	City         string `json:"city,omitempty"`
	UF           string `json:"uf,omitempty"`
}

type Client struct {
	ID      string     `json:"id"`
	Type    ClientType `json:"type"`
	Name    string     `json:"name"`
	TaxID   string     `json:"tax_id"`
	Phone   string     `json:"phone,omitempty"`
	Email   string     `json:"email,omitempty"`
	Address Address    `json:"address"`
}

type ClientRefKind string

const (
	ClientRefReference ClientRefKind = "reference"
	ClientRefEmbedded  ClientRefKind = "embedded"
)

// ClientRef identifica o cliente de uma venda: ou uma referência para um
// cliente cadastrado ou um registro embutido na própria venda.
type ClientRef struct {
	Kind   ClientRefKind `json:"kind"`
	ID     string        `json:"id,omitempty"`
	Record *Client       `json:"record,omitempty"`
}

func ReferenceClient(id string) ClientRef {
	return ClientRef{Kind: ClientRefReference, ID: id}
}

func EmbeddedClient(client Client) ClientRef {
	return ClientRef{Kind: ClientRefEmbedded, Record: &client}
}

// ReferencedID retorna o ID do cliente quando a venda aponta para um cliente cadastrado
func (r ClientRef) ReferencedID() (string, bool) {
	switch r.Kind {
	case ClientRefReference:
		return r.ID, r.ID != ""
	case ClientRefEmbedded:
		return "", false
	default:
		return "", false
	}
}

// DisplayName retorna o nome do cliente para exibição
func (r ClientRef) DisplayName(clientsByID map[string]Client) string {
	switch r.Kind {
	case ClientRefReference:
		return clientsByID[r.ID].Name
	case ClientRefEmbedded:
		if r.Record != nil {
			return r.Record.Name
		}
	}
	return ""
}
