package seed

import (
	categorydto "github.com/fekuna/boutique-catalog-service/internal/category/dto"
	productdto "github.com/fekuna/boutique-catalog-service/internal/product/dto"
)

func strPtr(s string) *string { return &s }

var sampleCategories = []categorydto.CreateCategoryInput{
	{
		Name:        "Tissus Wax",
		Slug:        "wax",
		Description: strPtr("Tissus Wax Hollandais authentiques aux motifs vibrants"),
		Image:       strPtr("https://images.unsplash.com/photo-1621815777085-3b9557672809?q=80&w=2070&auto=format&fit=crop"),
	},
	{
		Name:        "Bazin Riche",
		Slug:        "bazin",
		Description: strPtr("Bazin riche Getzner et damassé de première qualité"),
		Image:       strPtr("https://images.unsplash.com/photo-1574634534894-89d7576c8259?q=80&w=2000&auto=format&fit=crop"),
	},
	{
		Name:        "Accessoires",
		Slug:        "accessoires",
		Description: strPtr("Sacs, foulards et bijoux pour compléter votre tenue"),
		Image:       strPtr("https://images.unsplash.com/photo-1614031679232-15a002220451?q=80&w=1974&auto=format&fit=crop"),
	},
	{
		Name:        "Parfums",
		Slug:        "parfums",
		Description: strPtr("Fragrances orientales et boisées"),
		Image:       strPtr("https://images.unsplash.com/photo-1541643600914-78b084683601?q=80&w=1904&auto=format&fit=crop"),
	},
}

var sampleProducts = []productdto.CreateProductInput{
	{
		Name:        `Wax Hollandais "Fleurs de Mariage"`,
		Description: "Authentique Wax Hollandais avec motif Fleurs de Mariage. 100% coton, couleurs éclatantes garanties. Idéal pour vos tenues de cérémonie. Vendu par coupon de 6 yards.",
		Price:       35000,
		Category:    "wax",
		SubCategory: strPtr("Vlisco"),
		Images: []string{
			"https://images.unsplash.com/photo-1598556885311-667793d5843a?q=80&w=2070&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1596482103852-652395a32973?q=80&w=2070&auto=format&fit=crop",
		},
		InStock:  true,
		Featured: true,
	},
	{
		Name:        `Wax "Disque" Rouge et Jaune`,
		Description: "Le classique motif Disque revisité dans des tons chauds. Tissu robuste et confortable. Parfait pour boubous et jupes. 6 yards.",
		Price:       25000,
		Category:    "wax",
		SubCategory: strPtr("Hitarget"),
		Images: []string{
			"https://images.unsplash.com/photo-1528458909336-e7a0adfed0a5?q=80&w=1948&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1579969566367-5509210082f8?q=80&w=2070&auto=format&fit=crop",
		},
		InStock: true,
	},
	{
		Name:        "Bazin Riche Getzner Blanc",
		Description: "Le roi des tissus. Bazin Getzner blanc immaculé, brillance exceptionnelle. Teinture possible. Qualité supérieure autrichienne. 5 mètres.",
		Price:       80000,
		Category:    "bazin",
		SubCategory: strPtr("Getzner"),
		Images: []string{
			"https://images.unsplash.com/photo-1564859228273-278d3254e568?q=80&w=1974&auto=format&fit=crop",
		},
		InStock:  true,
		Featured: true,
	},
	{
		Name:        "Bazin Damassé Bleu Roi",
		Description: "Magnifique Bazin damassé teinté artisanalement. Couleur bleu roi profonde et motifs géométriques discrets. Tissu souple et agréable.",
		Price:       45000,
		Category:    "bazin",
		SubCategory: strPtr("Damassé"),
		Images: []string{
			"https://images.unsplash.com/photo-1550614000-4b9519e02a48?q=80&w=1934&auto=format&fit=crop",
		},
	},
	{
		Name:        "Sac à main en cuir et Wax",
		Description: "Sac à main artisanal unique mélangeant cuir véritable et tissu wax. Finitions soignées, poche intérieure zippée.",
		Price:       20000,
		Category:    "accessoires",
		SubCategory: strPtr("Maroquinerie"),
		Images: []string{
			"https://images.unsplash.com/photo-1594223274512-ad4803739b7c?q=80&w=1957&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1591561954557-26941169b49e?q=80&w=1974&auto=format&fit=crop",
		},
		InStock:  true,
		Featured: true,
	},
	{
		Name:        "Oud Royal",
		Description: "Un parfum envoûtant aux notes de bois de oud, d'ambre et d'épices. Tenue longue durée. Flacon de 100ml.",
		Price:       15000,
		Category:    "parfums",
		SubCategory: strPtr("Mixte"),
		Images: []string{
			"https://images.unsplash.com/photo-1594035910387-fea4779426e9?q=80&w=2080&auto=format&fit=crop",
		},
		InStock:  true,
		Featured: true,
	},
}
