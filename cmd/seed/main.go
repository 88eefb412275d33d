package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"karam/internal/config"
	"karam/internal/database"
	"karam/internal/domain"
	"karam/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM moyasar_payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM carts")
	db.Exec("DELETE FROM discount_codes")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM packages")
	db.Exec("DELETE FROM host_families")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	operatorHash, _ := bcrypt.GenerateFromPassword([]byte("operator123"), bcrypt.DefaultCost)
	operator := domain.User{
		Email:        "operator@karam.sa",
		PasswordHash: string(operatorHash),
		Role:         domain.RoleOperator,
		FullName:     "مشغل المنصة",
	}
	db.Create(&operator)
	log.Println("Operator created: operator@karam.sa / operator123")

	owners := []domain.User{}
	ownerNames := []string{"أبو محمد", "أم الكرم", "أبو الحجاز", "أبو الأنصار", "أبو المكية"}
	for i, name := range ownerNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("family123"), bcrypt.DefaultCost)
		owner := domain.User{
			Email:        fmt.Sprintf("family%d@karam.sa", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleFamily,
			FullName:     name,
			Phone:        fmt.Sprintf("+966 50 123 45%02d", i+10),
		}
		db.Create(&owner)
		owners = append(owners, owner)
	}
	log.Printf("%d family owners created (family1@karam.sa .. / family123)", len(owners))

	visitorEmails := []string{"ahmad@gmail.com", "fatimah@gmail.com", "yusuf@outlook.com"}
	for i, email := range visitorEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("visitor123"), bcrypt.DefaultCost)
		visitor := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleVisitor,
			FullName:     fmt.Sprintf("زائر %d", i+1),
			Phone:        fmt.Sprintf("+966 55 987 65%02d", i+30),
		}
		db.Create(&visitor)
	}
	log.Printf("%d visitors created (visitor123)", len(visitorEmails))

	// ================== HOST FAMILIES ==================
	log.Println("Creating host families...")

	families := []domain.HostFamily{
		{
			OwnerID: owners[0].ID, Name: "أسرة آل محمد", City: domain.CityMakkah,
			Address: "حي العزيزية، مكة المكرمة", Rating: 4.8, TotalReviews: 124, Capacity: 15,
			Features: []string{"قهوة عربية", "مجلس أرضي", "واي فاي"},
			Packages: []domain.Package{
				{Type: domain.PackageSimple, Name: "استقبال بسيط", PricePerPerson: 150},
				{Type: domain.PackageMeal, Name: "استقبال مع وجبة", PricePerPerson: 300},
			},
		},
		{
			OwnerID: owners[1].ID, Name: "مجلس الكرم", City: domain.CityMadinah,
			Address: "حي العوالي، المدينة المنورة", Rating: 4.9, TotalReviews: 85, Capacity: 20,
			Features: []string{"وجبة غداء", "إطلالة", "موقف خاص"},
			Packages: []domain.Package{
				{Type: domain.PackageMeal, Name: "استقبال مع وجبة", PricePerPerson: 300},
			},
		},
		{
			OwnerID: owners[2].ID, Name: "بيت الضيافة الحجازي", City: domain.CityMakkah,
			Address: "حي الشوقية، مكة المكرمة", Rating: 4.5, TotalReviews: 42, Capacity: 10,
			Features: []string{"تراث قديم", "تصوير", "هدايا"},
			Packages: []domain.Package{
				{Type: domain.PackageSimple, Name: "استقبال بسيط", PricePerPerson: 120},
			},
		},
		{
			OwnerID: owners[3].ID, Name: "ديوانية الأنصار", City: domain.CityMadinah,
			Address: "حي قباء، المدينة المنورة", Rating: 4.7, TotalReviews: 156, Capacity: 30,
			Features: []string{"قريب من الحرم", "وجبة عشاء", "مجلس كبير"},
			Packages: []domain.Package{
				{Type: domain.PackageSimple, Name: "استقبال بسيط", PricePerPerson: 250},
				{Type: domain.PackageMeal, Name: "استقبال مع وجبة", PricePerPerson: 350},
			},
		},
		{
			OwnerID: owners[4].ID, Name: "دار الضيافة المكية", City: domain.CityMakkah,
			Address: "حي أجياد، مكة المكرمة", Rating: 4.6, TotalReviews: 78, Capacity: 18,
			Features: []string{"مدخل جميل", "ديكور تراثي", "قهوة سعودية"},
			Packages: []domain.Package{
				{Type: domain.PackageSimple, Name: "استقبال بسيط", PricePerPerson: 180},
				{Type: domain.PackageMeal, Name: "استقبال مع وجبة", PricePerPerson: 280},
			},
		},
	}
	for i := range families {
		if err := db.Create(&families[i]).Error; err != nil {
			log.Fatal("family create failed:", err)
		}
	}
	log.Printf("%d host families created", len(families))

	// ================== SOUVENIRS ==================
	log.Println("Creating souvenirs...")

	products := []domain.Product{
		{Name: "سبحة خشبية فاخرة", Category: "gifts", Price: 45, Rating: 4.8, Sales: 24, InStock: true,
			Description: "سبحة مصنوعة يدوياً من خشب الزيتون الطبيعي"},
		{Name: "سجادة صلاة مطرزة", Category: "crafts", Price: 120, Rating: 4.9, Sales: 56, InStock: true,
			Description: "سجادة صلاة فاخرة بتطريز يدوي مستوحى من كسوة الكعبة"},
		{Name: "تمر عجوة فاخر (1 كجم)", Category: "food", Price: 85, Rating: 5.0, Sales: 112, InStock: true,
			Description: "تمر عجوة المدينة الفاخر، قطف جديد"},
		{Name: "مبخرة خشبية تراثية", Category: "crafts", Price: 150, Rating: 4.7, Sales: 33, InStock: true,
			Description: "مبخرة بتصميم حجازي تقليدي"},
		{Name: "ثوب سعودي مطرز", Category: "clothing", Price: 250, Rating: 4.6, Sales: 18, InStock: true,
			Description: "ثوب منزلي مريح بتطريز ناعم"},
		{Name: "مجموعة قهوة عربية", Category: "gifts", Price: 180, Rating: 4.9, Sales: 45, InStock: true,
			Description: "دلة وفناجين مع قهوة سعودية فاخرة"},
	}
	for i := range products {
		db.Create(&products[i])
	}
	log.Printf("%d souvenirs created", len(products))

	// ================== DISCOUNT CODES ==================
	log.Println("Creating discount codes...")

	nextYear := time.Now().AddDate(1, 0, 0)
	lastMonth := time.Now().AddDate(0, -1, 0)
	codes := []domain.DiscountCode{
		{Code: "KARAM10", Type: domain.DiscountPercent, Value: 10, Active: true, MaxUses: 1000, ExpiresAt: &nextYear},
		{Code: "WELCOME50", Type: domain.DiscountFixed, Value: 50, Active: true, MaxUses: 200, ExpiresAt: &nextYear},
		{Code: "RAMADAN24", Type: domain.DiscountPercent, Value: 15, Active: true, ExpiresAt: &lastMonth},
	}
	for i := range codes {
		db.Create(&codes[i])
	}
	log.Printf("%d discount codes created (KARAM10, WELCOME50 active)", len(codes))

	log.Println("Seed complete.")
}
