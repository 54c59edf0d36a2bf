package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mwalcott/motorlot/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.Account{}, &models.Classification{}, &models.Vehicle{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func TestClassificationsSortedByName(t *testing.T) {
	r := &InventoryRepo{DB: initTestDB(t)}
	ctx := context.Background()

	for _, name := range []string{"Truck", "Sedan", "SUV"} {
		require.NoError(t, r.AddClassification(ctx, &models.Classification{Name: name}))
	}

	out, err := r.Classifications(ctx)
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Equal(t, "SUV", out[0].Name)
	require.Equal(t, "Sedan", out[1].Name)
	require.Equal(t, "Truck", out[2].Name)
}

func TestClassificationByIDNotFound(t *testing.T) {
	r := &InventoryRepo{DB: initTestDB(t)}

	_, err := r.ClassificationByID(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVehicleRoundTrip(t *testing.T) {
	r := &InventoryRepo{DB: initTestDB(t)}
	ctx := context.Background()

	cl := models.Classification{Name: "SUV"}
	require.NoError(t, r.AddClassification(ctx, &cl))

	v := models.Vehicle{
		ClassificationID: cl.ID,
		Make:             "Ford",
		Model:            "Escape",
		Year:             2019,
		Description:      "A tidy small SUV",
		Image:            "/images/vehicles/escape.jpg",
		Thumbnail:        "/images/vehicles/escape-tn.jpg",
		Price:            18999.50,
		Miles:            42000,
		Color:            "Blue",
	}
	require.NoError(t, r.AddVehicle(ctx, &v))
	require.NotZero(t, v.ID)

	got, err := r.VehicleByID(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, v, got)

	listed, err := r.VehiclesByClassification(ctx, cl.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, v.ID, listed[0].ID)
}

func TestVehiclesByClassificationEmpty(t *testing.T) {
	r := &InventoryRepo{DB: initTestDB(t)}

	out, err := r.VehiclesByClassification(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestUpdateVehicleMissing(t *testing.T) {
	r := &InventoryRepo{DB: initTestDB(t)}

	err := r.UpdateVehicle(context.Background(), &models.Vehicle{ID: 99, Make: "Ford"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteVehicle(t *testing.T) {
	r := &InventoryRepo{DB: initTestDB(t)}
	ctx := context.Background()

	cl := models.Classification{Name: "SUV"}
	require.NoError(t, r.AddClassification(ctx, &cl))
	v := models.Vehicle{ClassificationID: cl.ID, Make: "Ford", Model: "Escape"}
	require.NoError(t, r.AddVehicle(ctx, &v))

	require.NoError(t, r.DeleteVehicle(ctx, v.ID))
	_, err := r.VehicleByID(ctx, v.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, r.DeleteVehicle(ctx, v.ID), ErrNotFound)
}

func TestAccountRepo(t *testing.T) {
	r := &AccountRepo{DB: initTestDB(t)}
	ctx := context.Background()

	acct := models.Account{
		FirstName:    "Sam",
		LastName:     "Harper",
		Email:        "sam@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         models.RoleCustomer,
	}
	require.NoError(t, r.Create(ctx, &acct))

	taken, err := r.EmailTaken(ctx, "sam@example.com")
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = r.EmailTaken(ctx, "other@example.com")
	require.NoError(t, err)
	require.False(t, taken)

	byEmail, err := r.ByEmail(ctx, "sam@example.com")
	require.NoError(t, err)
	require.Equal(t, acct.ID, byEmail.ID)

	_, err = r.ByEmail(ctx, "other@example.com")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.Update(ctx, acct.ID, "Samuel", "Harper", "sam@example.com"))
	updated, err := r.ByID(ctx, acct.ID)
	require.NoError(t, err)
	require.Equal(t, "Samuel", updated.FirstName)

	require.ErrorIs(t, r.Update(ctx, 999, "A", "B", "c@d.com"), ErrNotFound)
	require.ErrorIs(t, r.UpdatePassword(ctx, 999, "x"), ErrNotFound)
}
