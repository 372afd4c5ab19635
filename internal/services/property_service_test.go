package services

import (
	"math/rand"
	"testing"

	"proptoken/internal/models"
	"proptoken/internal/pagination"
	"proptoken/internal/testutil"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestRegisterProperty(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPropertyService(db, testRand())

		property, err := svc.RegisterProperty("Gulberg Heights", "Lahore", 20000000, 18.5, 2000,
			models.PropertyTypeResidential, PropertyDetails{YearBuilt: 2021, SquareFeet: 12000})
		testutil.AssertNoError(t, err)

		if property.ID == "" {
			t.Fatal("expected non-empty property ID")
		}
		if property.Code != "PROP_001" {
			t.Errorf("expected first code PROP_001, got %s", property.Code)
		}
		if property.Currency != "PKR" {
			t.Errorf("expected default currency PKR, got %s", property.Currency)
		}
		if property.TokensAvailable.IntPart() != 2000 {
			t.Errorf("expected all 2000 tokens available, got %s", property.TokensAvailable)
		}
	})

	t.Run("sequential_codes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPropertyService(db, testRand())

		first, err := svc.RegisterProperty("First", "Karachi", 10000000, 15, 1000, models.PropertyTypeCommercial, PropertyDetails{})
		testutil.AssertNoError(t, err)
		second, err := svc.RegisterProperty("Second", "Karachi", 10000000, 15, 1000, models.PropertyTypeCommercial, PropertyDetails{})
		testutil.AssertNoError(t, err)

		if first.Code != "PROP_001" || second.Code != "PROP_002" {
			t.Errorf("expected sequential codes, got %s then %s", first.Code, second.Code)
		}
	})

	t.Run("validation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPropertyService(db, testRand())

		cases := []struct {
			name     string
			propName string
			location string
			price    int64
			roi      float64
			supply   int64
			propType models.PropertyType
		}{
			{"empty_name", "", "Karachi", 10000000, 15, 1000, models.PropertyTypeResidential},
			{"empty_location", "Tower", "", 10000000, 15, 1000, models.PropertyTypeResidential},
			{"zero_price", "Tower", "Karachi", 0, 15, 1000, models.PropertyTypeResidential},
			{"negative_roi", "Tower", "Karachi", 10000000, -1, 1000, models.PropertyTypeResidential},
			{"zero_supply", "Tower", "Karachi", 10000000, 15, 0, models.PropertyTypeResidential},
			{"bad_type", "Tower", "Karachi", 10000000, 15, 1000, models.PropertyType("Industrial")},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.RegisterProperty(tc.propName, tc.location, tc.price, tc.roi, tc.supply, tc.propType, PropertyDetails{})
				testutil.AssertAppError(t, err, "VALIDATION_ERROR")
			})
		}
	})
}

func TestListProperties(t *testing.T) {
	t.Run("filters_by_location", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPropertyService(db, testRand())

		testutil.CreateTestProperty(t, db)
		other := testutil.CreateTestProperty(t, db)
		db.Model(other).Update("location", "Lahore")

		location := "Lahore"
		page, err := svc.ListProperties(pagination.PageRequest{}, PropertyFilter{Location: &location})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 1 {
			t.Fatalf("expected 1 property in Lahore, got %d", page.TotalItems)
		}
		if page.Data[0].Location != "Lahore" {
			t.Errorf("expected Lahore, got %s", page.Data[0].Location)
		}
	})

	t.Run("filters_by_price_and_roi", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPropertyService(db, testRand())

		cheap := testutil.CreateTestPropertyWithSupply(t, db, 6000000, 1000)
		db.Model(cheap).Update("roi", 12.0)
		testutil.CreateTestPropertyWithSupply(t, db, 40000000, 1000)

		maxPrice := int64(10000000)
		minROI := 10.0
		page, err := svc.ListProperties(pagination.PageRequest{}, PropertyFilter{MaxPrice: &maxPrice, MinROI: &minROI})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 1 {
			t.Fatalf("expected 1 match, got %d", page.TotalItems)
		}
		if page.Data[0].ID != cheap.ID {
			t.Errorf("expected the cheap property, got %s", page.Data[0].Code)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPropertyService(db, testRand())

		for i := 0; i < 5; i++ {
			testutil.CreateTestProperty(t, db)
		}

		page, err := svc.ListProperties(pagination.PageRequest{Page: 1, PageSize: 2}, PropertyFilter{})
		testutil.AssertNoError(t, err)

		if len(page.Data) != 2 {
			t.Errorf("expected 2 items on the page, got %d", len(page.Data))
		}
		if page.TotalItems != 5 {
			t.Errorf("expected 5 total items, got %d", page.TotalItems)
		}
		if page.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", page.TotalPages)
		}
	})
}

func TestGetPropertyByCode(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPropertyService(db, testRand())

		created := testutil.CreateTestProperty(t, db)
		got, err := svc.GetPropertyByCode(created.Code)
		testutil.AssertNoError(t, err)

		if got.ID != created.ID {
			t.Errorf("expected property %s, got %s", created.ID, got.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPropertyService(db, testRand())

		_, err := svc.GetPropertyByCode("PROP_999")
		testutil.AssertAppError(t, err, "PROPERTY_NOT_FOUND")
	})
}

func TestSeedDemoCatalog(t *testing.T) {
	t.Run("seeds_empty_catalog", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPropertyService(db, testRand())

		created, err := svc.SeedDemoCatalog()
		testutil.AssertNoError(t, err)
		if created != 20 {
			t.Fatalf("expected 20 seeded listings, got %d", created)
		}

		var properties []models.Property
		db.Order("code").Find(&properties)
		if properties[0].Code != "PROP_001" || properties[19].Code != "PROP_020" {
			t.Errorf("expected codes PROP_001..PROP_020, got %s..%s",
				properties[0].Code, properties[19].Code)
		}
		for _, p := range properties {
			if p.Price < 5000000 || p.Price > 50000000 {
				t.Errorf("%s: price %d outside generation range", p.Code, p.Price)
			}
			if p.ROI < 12 || p.ROI > 30 {
				t.Errorf("%s: roi %v outside generation range", p.Code, p.ROI)
			}
			if !p.TokensAvailable.Equal(p.TokensAvailable.Truncate(0)) || p.TokensAvailable.IntPart() != p.TokensSupply {
				t.Errorf("%s: expected full supply available", p.Code)
			}
		}
	})

	t.Run("leaves_populated_catalog_alone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPropertyService(db, testRand())

		testutil.CreateTestProperty(t, db)

		created, err := svc.SeedDemoCatalog()
		testutil.AssertNoError(t, err)
		if created != 0 {
			t.Errorf("expected no seeding on a populated catalog, seeded %d", created)
		}

		var count int64
		db.Model(&models.Property{}).Count(&count)
		if count != 1 {
			t.Errorf("expected catalog untouched with 1 listing, got %d", count)
		}
	})
}
