package importer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"paysage-backend/internal/storage"
)

type MockImportStorage struct {
	mock.Mock
}

func (m *MockImportStorage) BulkSaveProjects(ctx context.Context, projects []storage.Project) error {
	args := m.Called(ctx, projects)
	return args.Error(0)
}

func TestImportProjects_CSVPartialSuccess(t *testing.T) {
	csvContent := strings.Join([]string{
		`Nom du projet,Client,Adresse,Email,Type,Visites annuelles,Heures annuelles totales`,
		`Résidence des Lilas,Syndic Azur,12 rue des Lilas,contact@azur.fr,résidence,24,72`,
		`,Client sans projet,,,,,`,
		`Clos fleuri,M. Martin,3 allée du Clos,pas-un-email,particulier,12,36`,
		`Parc d'entreprise,SARL Verde,{addr},,entreprise,10,"30,5"`,
	}, "\n")

	mockStorage := new(MockImportStorage)
	mockStorage.On("BulkSaveProjects", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockStorage)

	result, err := service.ImportProjects(context.Background(), "chantiers.csv", strings.NewReader(csvContent))
	assert.NoError(t, err)

	assert.Equal(t, 4, result.RowsRead)
	assert.Len(t, result.Successful, 2)
	assert.Len(t, result.Errors, 2)

	assert.Equal(t, "Résidence des Lilas", result.Successful[0].Name)
	assert.Equal(t, storage.ProjectTypeResidence, result.Successful[0].ProjectType)
	assert.Equal(t, 24, result.Successful[0].AnnualVisits)
	assert.NotEmpty(t, result.Successful[0].ID)

	// decimal comma in the hours column
	assert.Equal(t, "Parc d'entreprise", result.Successful[1].Name)
	assert.InDelta(t, 30.5, result.Successful[1].AnnualTotalHours, 1e-9)

	// row 3 has no project name, row 4 a bad email
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "Nom du projet")
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Message, "email")

	mockStorage.AssertExpectations(t)
}

func TestImportProjects_CSVWithUTF8BOM(t *testing.T) {
	// "CSV UTF-8" saved from Excel carries a BOM on the first header cell
	csvContent := "\ufeffNom du projet,Client\nClos fleuri,M. Martin\n"

	mockStorage := new(MockImportStorage)
	mockStorage.On("BulkSaveProjects", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockStorage)

	result, err := service.ImportProjects(context.Background(), "chantiers.csv", strings.NewReader(csvContent))
	assert.NoError(t, err)
	assert.Len(t, result.Successful, 1)
	assert.Equal(t, "Clos fleuri", result.Successful[0].Name)
	assert.Empty(t, result.Errors)
}

func TestImportProjects_AllRowsRejectedSkipsStorage(t *testing.T) {
	csvContent := "Nom du projet,Client\n,Client A\n,Client B\n"

	mockStorage := new(MockImportStorage)
	service := NewService(mockStorage)

	result, err := service.ImportProjects(context.Background(), "vide.csv", strings.NewReader(csvContent))
	assert.NoError(t, err)
	assert.Empty(t, result.Successful)
	assert.Len(t, result.Errors, 2)

	mockStorage.AssertNotCalled(t, "BulkSaveProjects")
}

func TestImportProjects_Excel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]string{"Nom du projet", "Client", "Visites annuelles"})
	_ = f.SetSheetRow(sheet, "A2", &[]string{"Clos fleuri", "M. Martin", "12"})
	_ = f.SetSheetRow(sheet, "A3", &[]string{"", "Anonyme", "3"})

	var buf bytes.Buffer
	assert.NoError(t, f.Write(&buf))

	mockStorage := new(MockImportStorage)
	mockStorage.On("BulkSaveProjects", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockStorage)

	result, err := service.ImportProjects(context.Background(), "chantiers.xlsx", bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	assert.Len(t, result.Successful, 1)
	assert.Equal(t, "Clos fleuri", result.Successful[0].Name)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
}

func TestImportProjects_UnsupportedExtension(t *testing.T) {
	service := NewService(new(MockImportStorage))

	_, err := service.ImportProjects(context.Background(), "chantiers.pdf", strings.NewReader(""))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestNormalizeHeader_TolerantToAccentsCaseAndSpacing(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Nom du projet", "nom du projet"},
		{"  NOM DU PROJET ", "nom du projet"},
		{"visites_annuelles", "visites annuelles"},
		{"Téléphone", "telephone"},
		{"Heures  annuelles   totales", "heures annuelles totales"},
		{"\ufeffNom du projet", "nom du projet"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeHeader(tt.in))
	}
}

func TestRecordGet_AliasesAndTrimming(t *testing.T) {
	r := Record{RowNumber: 2, Values: map[string]string{
		"nom du projet": "  Clos fleuri ",
		"tel":           "0612345678",
	}}

	assert.Equal(t, "Clos fleuri", r.Get("Nom du projet"))
	assert.Equal(t, "0612345678", r.Get("Téléphone", "Tel"))
	assert.Equal(t, "", r.Get("Email"))
}
