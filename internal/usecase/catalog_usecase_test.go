package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petclinic-client/internal/domain"
	"petclinic-client/internal/infrastructure/cache"
)

func newCatalog(dir *fakeDirectory) *CatalogUsecase {
	return NewCatalogUsecase(dir, doctorRepo{dir}, productRepo{dir}, cache.NewMemoryCache(time.Minute, time.Minute), testConfig())
}

func TestCatalog_ClinicsAreCached(t *testing.T) {
	dir := newFakeDirectory()
	uc := newCatalog(dir)

	for i := 0; i < 3; i++ {
		clinics, err := uc.ListClinics(context.Background())
		require.NoError(t, err)
		assert.Len(t, clinics, 1)
	}
	_, err := uc.GetClinic(context.Background(), "c1")
	require.NoError(t, err)
	_, err = uc.GetClinic(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, 2, dir.clinicCalls)
}

func TestCatalog_CreateDoctorInvalidatesListings(t *testing.T) {
	dir := newFakeDirectory()
	dir.doctors["d1"] = domain.Doctor{ID: "d1", ClinicID: "c1"}
	uc := newCatalog(dir)
	ctx := context.Background()

	doctors, err := uc.ListDoctors(ctx, domain.DoctorFilter{ClinicID: "c1"})
	require.NoError(t, err)
	assert.Len(t, doctors, 1)

	_, err = uc.CreateDoctor(ctx, domain.CreateDoctorRequest{
		Name:        "Vera",
		Specialty:   "surgery",
		ClinicID:    "c1",
		WorkStart:   "09:00",
		WorkEnd:     "17:00",
		SlotMinutes: 30,
	})
	require.NoError(t, err)

	doctors, err = uc.ListDoctors(ctx, domain.DoctorFilter{ClinicID: "c1"})
	require.NoError(t, err)
	assert.Len(t, doctors, 2)
	assert.Equal(t, 2, dir.listCalls)
}

func TestCatalog_CreateDoctorValidates(t *testing.T) {
	uc := newCatalog(newFakeDirectory())
	_, err := uc.CreateDoctor(context.Background(), domain.CreateDoctorRequest{Name: "Vera", WorkStart: "9am"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalog_ProductsAreCached(t *testing.T) {
	dir := newFakeDirectory()
	dir.products["p1"] = domain.Product{ID: "p1", Price: decimal.NewFromInt(5)}
	uc := newCatalog(dir)
	ctx := context.Background()

	_, meta, err := uc.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPage, meta.Page)
	assert.Equal(t, domain.DefaultLimit, meta.Limit)

	_, _, err = uc.ListProducts(ctx, domain.ProductFilter{Page: 1, Limit: 20})
	require.NoError(t, err)

	p, err := uc.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	_, err = uc.GetProduct(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, 2, dir.productHits)
}

func TestCatalog_NotFoundIsNotCached(t *testing.T) {
	dir := newFakeDirectory()
	uc := newCatalog(dir)

	_, err := uc.GetDoctor(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetDoctor(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, dir.doctorCalls)
}

func TestCatalog_CachedValuesAreCopies(t *testing.T) {
	dir := newFakeDirectory()
	dir.doctors["d1"] = domain.Doctor{ID: "d1", ClinicID: "c1", Name: "Vera", WorkingDays: []time.Weekday{time.Monday}}
	dir.products["bone"] = domain.Product{ID: "bone", Name: "Bone", Price: decimal.NewFromInt(3)}
	uc := newCatalog(dir)
	ctx := context.Background()
	filter := domain.DoctorFilter{ClinicID: "c1"}

	// prime every entry, then tamper with what cache hits return
	_, err := uc.ListClinics(ctx)
	require.NoError(t, err)
	_, err = uc.GetClinic(ctx, "c1")
	require.NoError(t, err)
	_, err = uc.ListDoctors(ctx, filter)
	require.NoError(t, err)
	_, err = uc.GetDoctor(ctx, "d1")
	require.NoError(t, err)
	_, err = uc.GetProduct(ctx, "bone")
	require.NoError(t, err)
	_, _, err = uc.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)

	clinics, _ := uc.ListClinics(ctx)
	clinics[0].Name = "tampered"
	clinic, _ := uc.GetClinic(ctx, "c1")
	clinic.Name = "tampered"
	doctors, _ := uc.ListDoctors(ctx, filter)
	doctors[0].Name = "tampered"
	doctors[0].WorkingDays[0] = time.Sunday
	doctor, _ := uc.GetDoctor(ctx, "d1")
	doctor.WorkingDays[0] = time.Sunday
	product, _ := uc.GetProduct(ctx, "bone")
	product.Name = "tampered"
	items, _, _ := uc.ListProducts(ctx, domain.ProductFilter{})
	items[0].Name = "tampered"

	clinics, _ = uc.ListClinics(ctx)
	assert.Equal(t, "Downtown", clinics[0].Name)
	clinic, _ = uc.GetClinic(ctx, "c1")
	assert.Empty(t, clinic.Name)
	doctors, _ = uc.ListDoctors(ctx, filter)
	assert.Equal(t, "Vera", doctors[0].Name)
	assert.Equal(t, []time.Weekday{time.Monday}, doctors[0].WorkingDays)
	doctor, _ = uc.GetDoctor(ctx, "d1")
	assert.Equal(t, []time.Weekday{time.Monday}, doctor.WorkingDays)
	product, _ = uc.GetProduct(ctx, "bone")
	assert.Equal(t, "Bone", product.Name)
	items, _, _ = uc.ListProducts(ctx, domain.ProductFilter{})
	assert.Equal(t, "Bone", items[0].Name)

	assert.Equal(t, 2, dir.clinicCalls)
	assert.Equal(t, 1, dir.listCalls)
}
