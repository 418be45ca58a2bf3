package store

import (
	"time"

	"soukel/internal/domain"
	"soukel/pkg/slug"
)

func mockCategories() []domain.Category {
	mk := func(id, ar, en, icon, color string, order int) domain.Category {
		return domain.Category{
			ID: id, NameAr: ar, NameEn: en, Slug: slug.From(en),
			Icon: icon, Color: color, SortOrder: order, Active: true,
		}
	}
	return []domain.Category{
		mk("cat_vehicles", "مركبات", "Vehicles", "car", "#2563eb", 1),
		mk("cat_realestate", "عقارات", "Real Estate", "home", "#16a34a", 2),
		mk("cat_electronics", "إلكترونيات", "Electronics", "cpu", "#9333ea", 3),
		mk("cat_fashion", "أزياء", "Fashion", "shirt", "#db2777", 4),
		mk("cat_furniture", "أثاث", "Furniture", "sofa", "#d97706", 5),
		mk("cat_jobs", "وظائف", "Jobs", "briefcase", "#0891b2", 6),
		mk("cat_services", "خدمات", "Services", "wrench", "#64748b", 7),
	}
}

func (s *MockStore) seed() {
	now := time.Now()
	s.cats = mockCategories()

	s.users = []domain.User{
		{ID: "user_1", Name: "أحمد خليل", Email: "ahmad@example.ps", Status: domain.AccountActive, CreatedAt: now.Add(-90 * 24 * time.Hour)},
		{ID: "user_2", Name: "معرض السلام للسيارات", Email: "salam.motors@example.ps", BusinessName: "معرض السلام", BusinessVerified: true, Status: domain.AccountActive, CreatedAt: now.Add(-200 * 24 * time.Hour)},
		{ID: "user_3", Name: "ليان نصار", Email: "layan@example.ps", Status: domain.AccountActive, CreatedAt: now.Add(-30 * 24 * time.Hour)},
	}

	ad := func(id, userID, title, desc, catID, city string, price float64, adType string, age time.Duration) domain.Ad {
		created := now.Add(-age)
		return domain.Ad{
			ID: id, UserID: userID, Title: title, Description: desc,
			CategoryID: catID, Price: price, Currency: domain.DefaultCurrency,
			PriceType: domain.PriceFixed, City: city, Status: domain.StatusActive,
			AdType: adType, CreatedAt: created, UpdatedAt: created,
			ExpiresAt: created.Add(domain.AdLifetime),
		}
	}

	a1 := ad("ad_1", "user_2", "هيونداي افانتي 2019", "سيارة بحالة ممتازة، صيانة وكالة، قطعت 60 ألف كم", "cat_vehicles", "رام الله", 62000, domain.TypeSell, 2*time.Hour)
	a1.Featured = true
	a1.BusinessAd = true
	a1.Condition = domain.CondUsed
	a1.ContactName = "معرض السلام"
	a1.ContactPhone = "0591234567"

	a2 := ad("ad_2", "user_1", "شقة للإيجار قرب الجامعة", "شقة ثلاث غرف، طابق ثاني، قرب جامعة بيرزيت", "cat_realestate", "بيرزيت", 1800, domain.TypeRent, 6*time.Hour)
	a2.Urgent = true

	a3 := ad("ad_3", "user_3", "آيفون 13 برو", "آيفون 13 برو 256 جيجا، مع الكرتونة والشاحن", "cat_electronics", "نابلس", 2900, domain.TypeSell, 24*time.Hour)
	a3.Condition = domain.CondUsed

	a4 := ad("ad_4", "user_1", "مطلوب مبرمج تطبيقات", "شركة ناشئة في رام الله تبحث عن مبرمج فلاتر بدوام كامل", "cat_jobs", "رام الله", 0, domain.TypeJob, 48*time.Hour)
	a4.PriceType = domain.PriceContact

	a5 := ad("ad_5", "user_3", "طقم كنب مستعمل", "طقم كنب 7 مقاعد بحالة جيدة جداً", "cat_furniture", "الخليل", 1200, domain.TypeSell, 72*time.Hour)
	a5.Condition = domain.CondUsed
	a5.PriceType = domain.PriceNegotiable

	a6 := ad("ad_6", "user_2", "تويوتا كورولا 2021", "فحص كامل، بدون ملاحظات", "cat_vehicles", "نابلس", 84000, domain.TypeSell, 96*time.Hour)
	a6.Featured = true
	a6.BusinessAd = true
	a6.Condition = domain.CondUsed

	s.ads = []domain.Ad{a1, a2, a3, a4, a5, a6}
}
