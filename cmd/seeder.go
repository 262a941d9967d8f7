package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/expense-tracking/internal/audit"
	"github.com/frahmantamala/expense-tracking/internal/category"
	"github.com/frahmantamala/expense-tracking/internal/department"
	"github.com/frahmantamala/expense-tracking/internal/employee"
	"github.com/frahmantamala/expense-tracking/internal/paymentmethod"
	"github.com/frahmantamala/expense-tracking/internal/session"
	"github.com/frahmantamala/expense-tracking/internal/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init ORM: %v", err)
		}

		if err := seed(gormDB); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}
	},
}

// seed goes through the audit store so the sample data carries the same
// stamps and audit rows as real writes.
func seed(gormDB *gorm.DB) error {
	var userCount int64
	if err := gormDB.Model(&user.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		fmt.Println("database already seeded, skipping")
		return nil
	}

	store := audit.NewStore(gormDB)

	hr := &department.Department{Name: "Human Resources", Description: "People operations"}
	it := &department.Department{Name: "IT", Description: "Infrastructure and software"}
	finance := &department.Department{Name: "Finance", Description: "Accounting and payroll"}

	rec := audit.NewRecorder("seeder")
	rec.Added(hr)
	rec.Added(it)
	rec.Added(finance)

	for _, c := range []*category.ExpenseCategory{
		{Name: "Travel", Description: "Transport and accommodation"},
		{Name: "Food", Description: "Meals and catering"},
		{Name: "Office Supplies", Description: "Equipment and consumables"},
	} {
		rec.Added(c)
	}

	for _, m := range []*paymentmethod.PaymentMethod{
		{Name: "Bank Transfer"},
		{Name: "Corporate Card"},
		{Name: "Cash"},
	} {
		rec.Added(m)
	}

	if err := store.Commit(rec); err != nil {
		return err
	}

	admin := &user.User{UserName: "admin", Role: session.RoleManager}
	if err := admin.SetPassword("admin123"); err != nil {
		return err
	}
	jdoe := &user.User{UserName: "jdoe", Role: session.RoleEmployee}
	if err := jdoe.SetPassword("password"); err != nil {
		return err
	}

	rec = audit.NewRecorder("seeder")
	rec.Added(admin)
	rec.Added(jdoe)
	if err := store.Commit(rec); err != nil {
		return err
	}

	adminIBAN, err := employee.GenerateIBAN()
	if err != nil {
		return err
	}
	jdoeIBAN, err := employee.GenerateIBAN()
	if err != nil {
		return err
	}

	rec = audit.NewRecorder("seeder")
	rec.Added(&employee.Employee{
		UserID:       admin.ID,
		Name:         "Ayse",
		Surname:      "Yilmaz",
		Email:        "ayse.yilmaz@example.com",
		DepartmentID: finance.ID,
		Salary:       90000_00,
		IBAN:         adminIBAN,
		HireDate:     time.Now().AddDate(-3, 0, 0),
	})
	rec.Added(&employee.Employee{
		UserID:       jdoe.ID,
		Name:         "John",
		Surname:      "Doe",
		Email:        "john.doe@example.com",
		DepartmentID: it.ID,
		Salary:       60000_00,
		IBAN:         jdoeIBAN,
		HireDate:     time.Now().AddDate(-1, 0, 0),
	})
	if err := store.Commit(rec); err != nil {
		return err
	}

	fmt.Println("seeded departments, categories, payment methods and sample users (admin/admin123, jdoe/password)")
	return nil
}
