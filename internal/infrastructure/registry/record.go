// Package registry queries the OpenCNPJ public company registry and maps its
// responses onto person.Company records.
package registry

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
)

// Telephone is a phone entry as returned by the registry
type Telephone struct {
	AreaCode string `json:"ddd"`
	Number   string `json:"numero"`
	IsFax    bool   `json:"is_fax"`
}

// PartnerRecord is a shareholder board (QSA) entry
type PartnerRecord struct {
	Name      string  `json:"nome_socio"`
	Document  string  `json:"cnpj_cpf_socio"`
	Role      string  `json:"qualificacao_socio"`
	EntryDate *string `json:"data_entrada_sociedade"`
	Type      *string `json:"identificador_socio"`
	AgeRange  *string `json:"faixa_etaria"`
}

// CompanyRecord is the OpenCNPJ company payload. Keys keep the registry's
// snake_case names; every optional key may be null or absent.
type CompanyRecord struct {
	CNPJ                string          `json:"cnpj"`
	LegalName           string          `json:"razao_social"`
	TradeName           *string         `json:"nome_fantasia"`
	CadastralStatus     *string         `json:"situacao_cadastral"`
	CadastralStatusDate *string         `json:"data_situacao_cadastral"`
	HeadOfficeOrBranch  *string         `json:"matriz_filial"`
	ActivityStartDate   *string         `json:"data_inicio_atividade"`
	MainCnae            *string         `json:"cnae_principal"`
	SecondaryCnaes      []string        `json:"cnaes_secundarios"`
	SecondaryCnaesCount *int            `json:"cnaes_secundarios_count"`
	LegalNature         *string         `json:"natureza_juridica"`
	Street              *string         `json:"logradouro"`
	Number              *string         `json:"numero"`
	Complement          *string         `json:"complemento"`
	District            *string         `json:"bairro"`
	ZipCode             *string         `json:"cep"`
	State               *string         `json:"uf"`
	City                *string         `json:"municipio"`
	Email               *string         `json:"email"`
	Telephones          []Telephone     `json:"telefones"`
	CapitalSocial       *string         `json:"capital_social"`
	CompanySize         *string         `json:"porte_empresa"`
	SimplesOption       Flag            `json:"opcao_simples"`
	SimplesOptionDate   *string         `json:"data_opcao_simples"`
	MeiOption           Flag            `json:"opcao_mei"`
	MeiOptionDate       *string         `json:"data_opcao_mei"`
	Partners            []PartnerRecord `json:"QSA"`
}

// Flag is a tri-state registry option. The registry reports these either as
// JSON booleans or as "S"/"N" strings; null, absent and unrecognized values
// leave the flag unknown.
type Flag struct {
	Value *bool
}

// Known reports whether the registry gave a definite answer
func (f Flag) Known() bool {
	return f.Value != nil
}

// UnmarshalJSON accepts booleans, yes/no strings and null
func (f *Flag) UnmarshalJSON(data []byte) error {
	f.Value = nil
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		f.Value = &b
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "sim", "true", "y", "yes":
		yes := true
		f.Value = &yes
	case "n", "não", "nao", "false", "no":
		no := false
		f.Value = &no
	}
	return nil
}

// MarshalJSON writes the flag as a boolean or null
func (f Flag) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	if *f.Value {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

func decodeRecord(data []byte) (*CompanyRecord, error) {
	var rec CompanyRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func encodeRecord(rec *CompanyRecord) ([]byte, error) {
	return json.Marshal(rec)
}
