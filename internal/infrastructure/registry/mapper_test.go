package registry

import (
	"testing"

	"github.com/finapp2p/backend/internal/domain/person"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyRecord_ToCompany(t *testing.T) {
	rec, err := decodeRecord([]byte(sampleResponse))
	require.NoError(t, err)

	c := rec.ToCompany()

	assert.Equal(t, sampleCNPJ, c.ID)
	assert.Equal(t, sampleCNPJ, c.Document)
	assert.Equal(t, "EMPRESA EXEMPLO LTDA", c.Name)
	assert.True(t, c.IsActive)
	assert.False(t, c.CreatedAt.IsZero())
	assert.Nil(t, c.UpdatedAt)

	require.NotNil(t, c.TradeName)
	assert.Equal(t, "EXEMPLO COMÉRCIO", *c.TradeName)
	require.NotNil(t, c.Email)
	assert.Equal(t, "contato@exemplo.com.br", *c.Email)
	assert.Equal(t, "Ativa", *c.CadastralStatus)
	assert.Equal(t, "2005-11-03", *c.CadastralStatusDate)
	require.NotNil(t, c.RegistrationStatus)
	assert.Equal(t, "Ativa", *c.RegistrationStatus)
	require.NotNil(t, c.RegistrationStatusDate)
	assert.Equal(t, "2005-11-03", *c.RegistrationStatusDate)
	assert.Equal(t, "2001-02-03", *c.FoundationDate)
	assert.Equal(t, "4751201", *c.MainCnae)
	assert.Equal(t, []string{"4752100", "9511800"}, c.SecondaryCnaes)
	assert.Equal(t, 2, c.SecondaryCnaesCount())
	assert.Equal(t, "Sociedade Empresária Limitada", *c.LegalNature)
	assert.Equal(t, "150000,00", *c.CapitalSocial)
	assert.Equal(t, "Micro Empresa", *c.CompanySize)
	require.NotNil(t, c.SimplesOption)
	assert.True(t, *c.SimplesOption)
	require.NotNil(t, c.MeiOption)
	assert.False(t, *c.MeiOption)

	require.Len(t, c.Phones, 2)
	assert.Equal(t, "11", c.Phones[0].AreaCode)
	assert.Equal(t, "40041234", c.Phones[0].Number)
	assert.False(t, c.Phones[0].IsFax)
	assert.True(t, c.Phones[1].IsFax)

	require.NotNil(t, c.Address)
	assert.Equal(t, "RUA DAS FLORES", c.Address.Street)
	assert.Equal(t, "100", c.Address.Number)
	require.NotNil(t, c.Address.Complement)
	assert.Equal(t, "SALA 2", *c.Address.Complement)
	assert.Equal(t, "CENTRO", c.Address.District)
	assert.Equal(t, "SAO PAULO", c.Address.City)
	assert.Equal(t, "SP", c.Address.State)
	assert.Equal(t, "01001000", c.Address.ZipCode)

	require.Len(t, c.Partners, 1)
	p := c.Partners[0]
	assert.Equal(t, "MARIA SOUZA", p.Name)
	assert.Equal(t, "***123456**", p.Document)
	assert.Equal(t, "Sócio-Administrador", p.Role)
	assert.Equal(t, "Pessoa Física", p.Type)
	require.NotNil(t, p.EntryDate)
	assert.Equal(t, "2001-02-03", *p.EntryDate)
	require.NotNil(t, p.AgeRange)
	assert.Equal(t, "41 a 50 anos", *p.AgeRange)
}

func TestCompanyRecord_SavedLookupKeepsRegistrationStatus(t *testing.T) {
	rec, err := decodeRecord([]byte(`{"cnpj":"11222333000181","razao_social":"ACME","situacao_cadastral":"Ativa","data_situacao_cadastral":"2005-11-03"}`))
	require.NoError(t, err)

	row := person.RowFromPerson(person.MergeCompany(nil, rec.ToCompany()))

	require.NotNil(t, row.RegistrationStatus)
	assert.Equal(t, "Ativa", *row.RegistrationStatus)
	require.NotNil(t, row.RegistrationStatusDate)
	assert.Equal(t, "2005-11-03", *row.RegistrationStatusDate)
}

func TestCompanyRecord_ToCompany_Minimal(t *testing.T) {
	rec, err := decodeRecord([]byte(`{
		"cnpj": "12345678000195",
		"razao_social": "MINIMA SA",
		"nome_fantasia": null,
		"logradouro": "RUA A",
		"uf": "RJ",
		"opcao_simples": null,
		"QSA": null
	}`))
	require.NoError(t, err)

	c := rec.ToCompany()

	assert.Equal(t, "MINIMA SA", c.Name)
	assert.Nil(t, c.TradeName)
	assert.Nil(t, c.Email)
	assert.Nil(t, c.FoundationDate)
	assert.Nil(t, c.Address, "address needs street, city and state")
	assert.Nil(t, c.SimplesOption)
	assert.Nil(t, c.MeiOption)
	assert.Nil(t, c.SecondaryCnaes)
	assert.Equal(t, 0, c.SecondaryCnaesCount())
	assert.Empty(t, c.Phones)
	assert.Empty(t, c.Partners)
}

func TestFlag_UnmarshalJSON(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		input string
		want  *bool
	}{
		{`true`, &yes},
		{`false`, &no},
		{`"S"`, &yes},
		{`"N"`, &no},
		{`"Sim"`, &yes},
		{`"Não"`, &no},
		{`null`, nil},
		{`""`, nil},
		{`"talvez"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var f Flag
			require.NoError(t, f.UnmarshalJSON([]byte(tt.input)))
			assert.Equal(t, tt.want, f.Value)
			assert.Equal(t, tt.want != nil, f.Known())
		})
	}

	var f Flag
	assert.Error(t, f.UnmarshalJSON([]byte(`12`)))
}

func TestFlag_RoundTripsThroughCache(t *testing.T) {
	rec, err := decodeRecord([]byte(sampleResponse))
	require.NoError(t, err)

	data, err := encodeRecord(rec)
	require.NoError(t, err)
	again, err := decodeRecord(data)
	require.NoError(t, err)

	assert.Equal(t, rec, again)
}
