package usecase

import (
	"context"
	"strconv"

	"petclinic-client/config"
	"petclinic-client/internal/domain"
	"petclinic-client/pkg/cache"
	"petclinic-client/pkg/logger"
	"petclinic-client/pkg/utils"
)

// CatalogUsecase serves the read-mostly directories: clinics, doctors and
// shop products. Reads go through the cache; writes invalidate it.
type CatalogUsecase struct {
	clinics  domain.ClinicRepository
	doctors  domain.DoctorRepository
	products domain.ProductRepository
	cache    cache.CacheService
	cfg      *config.Config
}

func NewCatalogUsecase(clinics domain.ClinicRepository, doctors domain.DoctorRepository, products domain.ProductRepository, cache cache.CacheService, cfg *config.Config) *CatalogUsecase {
	return &CatalogUsecase{
		clinics:  clinics,
		doctors:  doctors,
		products: products,
		cache:    cache,
		cfg:      cfg,
	}
}

// Cached entries are stored and handed out as copies so callers can't
// mutate what the next reader gets.

func cloneDoctors(in []domain.Doctor) []domain.Doctor {
	out := make([]domain.Doctor, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}

type productPage struct {
	items []domain.Product
	meta  domain.Pagination
}

func (u *CatalogUsecase) ListClinics(ctx context.Context) ([]domain.Clinic, error) {
	key := cache.Key("clinics", "all")
	if val, found := u.cache.Get(key); found {
		return append([]domain.Clinic(nil), val.([]domain.Clinic)...), nil
	}

	clinics, err := u.clinics.List(ctx)
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, append([]domain.Clinic(nil), clinics...), u.cfg.CacheDirectoryTTL)
	return clinics, nil
}

func (u *CatalogUsecase) GetClinic(ctx context.Context, id string) (*domain.Clinic, error) {
	key := cache.Key("clinic", id)
	if val, found := u.cache.Get(key); found {
		clinic := val.(domain.Clinic)
		return &clinic, nil
	}

	clinic, err := u.clinics.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, *clinic, u.cfg.CacheDirectoryTTL)
	return clinic, nil
}

func (u *CatalogUsecase) ListDoctors(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error) {
	key := cache.Key("doctors", "clinic="+filter.ClinicID, "specialty="+filter.Specialty)
	if val, found := u.cache.Get(key); found {
		return cloneDoctors(val.([]domain.Doctor)), nil
	}

	doctors, err := u.doctors.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, cloneDoctors(doctors), u.cfg.CacheDirectoryTTL)
	return doctors, nil
}

func (u *CatalogUsecase) GetDoctor(ctx context.Context, id string) (*domain.Doctor, error) {
	key := cache.Key("doctor", id)
	if val, found := u.cache.Get(key); found {
		doctor := val.(domain.Doctor).Clone()
		return &doctor, nil
	}

	doctor, err := u.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, doctor.Clone(), u.cfg.CacheDirectoryTTL)
	return doctor, nil
}

// CreateDoctor is admin-only on the API side.
func (u *CatalogUsecase) CreateDoctor(ctx context.Context, req domain.CreateDoctorRequest) (*domain.Doctor, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	doctor, err := u.doctors.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	u.cache.DeletePrefix("doctors:")
	logger.Debug().Str("doctor_id", doctor.ID).Msg("Doctor listings invalidated")
	return doctor, nil
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, domain.Pagination, error) {
	page, limit := domain.NormalizePage(filter.Page, filter.Limit)
	filter.Page, filter.Limit = page, limit

	key := cache.Key("products", strconv.Itoa(page), strconv.Itoa(limit), filter.Category, filter.Search)
	if val, found := u.cache.Get(key); found {
		p := val.(productPage)
		return append([]domain.Product(nil), p.items...), p.meta, nil
	}

	items, meta, err := u.products.List(ctx, filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	u.cache.Set(key, productPage{items: append([]domain.Product(nil), items...), meta: meta}, u.cfg.CacheProductTTL)
	return items, meta, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := cache.Key("product", id)
	if val, found := u.cache.Get(key); found {
		product := val.(domain.Product)
		return &product, nil
	}

	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, *product, u.cfg.CacheProductTTL)
	return product, nil
}
