package catalog

import "karam/internal/domain"

// fallbackFamilies is served when the families table is unreachable, so the
// browse page never renders empty.
func fallbackFamilies() []domain.HostFamily {
	return []domain.HostFamily{
		{
			ID: 1, Name: "أسرة آل محمد", City: domain.CityMakkah,
			Address: "حي العزيزية، مكة المكرمة", Rating: 4.8, TotalReviews: 124, Capacity: 15,
			Features: []string{"قهوة عربية", "مجلس أرضي", "واي فاي"},
			Packages: []domain.Package{
				{ID: 1, FamilyID: 1, Type: domain.PackageSimple, PricePerPerson: 150},
				{ID: 2, FamilyID: 1, Type: domain.PackageMeal, PricePerPerson: 300},
			},
		},
		{
			ID: 2, Name: "مجلس الكرم", City: domain.CityMadinah,
			Address: "حي العوالي، المدينة المنورة", Rating: 4.9, TotalReviews: 85, Capacity: 20,
			Features: []string{"وجبة غداء", "إطلالة", "موقف خاص"},
			Packages: []domain.Package{
				{ID: 3, FamilyID: 2, Type: domain.PackageMeal, PricePerPerson: 300},
			},
		},
		{
			ID: 3, Name: "بيت الضيافة الحجازي", City: domain.CityMakkah,
			Address: "حي الشوقية، مكة المكرمة", Rating: 4.5, TotalReviews: 42, Capacity: 10,
			Features: []string{"تراث قديم", "تصوير", "هدايا"},
			Packages: []domain.Package{
				{ID: 4, FamilyID: 3, Type: domain.PackageSimple, PricePerPerson: 120},
			},
		},
		{
			ID: 4, Name: "ديوانية الأنصار", City: domain.CityMadinah,
			Address: "حي قباء، المدينة المنورة", Rating: 4.7, TotalReviews: 156, Capacity: 30,
			Features: []string{"قريب من الحرم", "وجبة عشاء", "مجلس كبير"},
			Packages: []domain.Package{
				{ID: 5, FamilyID: 4, Type: domain.PackageSimple, PricePerPerson: 250},
				{ID: 6, FamilyID: 4, Type: domain.PackageMeal, PricePerPerson: 350},
			},
		},
		{
			ID: 5, Name: "دار الضيافة المكية", City: domain.CityMakkah,
			Address: "حي أجياد، مكة المكرمة", Rating: 4.6, TotalReviews: 78, Capacity: 18,
			Features: []string{"مدخل جميل", "ديكور تراثي", "قهوة سعودية"},
			Packages: []domain.Package{
				{ID: 7, FamilyID: 5, Type: domain.PackageSimple, PricePerPerson: 180},
				{ID: 8, FamilyID: 5, Type: domain.PackageMeal, PricePerPerson: 280},
			},
		},
	}
}

func fallbackProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "سبحة خشبية فاخرة", Category: "gifts", Price: 45, Rating: 4.8, Sales: 24, InStock: true,
			Description: "سبحة مصنوعة يدوياً من خشب الزيتون الطبيعي"},
		{ID: 2, Name: "سجادة صلاة مطرزة", Category: "crafts", Price: 120, Rating: 4.9, Sales: 56, InStock: true,
			Description: "سجادة صلاة فاخرة بتطريز يدوي مستوحى من كسوة الكعبة"},
		{ID: 3, Name: "تمر عجوة فاخر (1 كجم)", Category: "food", Price: 85, Rating: 5.0, Sales: 112, InStock: true,
			Description: "تمر عجوة المدينة الفاخر، قطف جديد"},
		{ID: 4, Name: "مبخرة خشبية تراثية", Category: "crafts", Price: 150, Rating: 4.7, Sales: 33, InStock: true,
			Description: "مبخرة بتصميم حجازي تقليدي"},
		{ID: 5, Name: "ثوب سعودي مطرز", Category: "clothing", Price: 250, Rating: 4.6, Sales: 18, InStock: true,
			Description: "ثوب منزلي مريح بتطريز ناعم"},
		{ID: 6, Name: "مجموعة قهوة عربية", Category: "gifts", Price: 180, Rating: 4.9, Sales: 45, InStock: true,
			Description: "دلة وفناجين مع قهوة سعودية فاخرة"},
	}
}
