package setting

// Built-in values used when a key is missing from the store. They are also
// what `boutiquectl seed` restores.

var DefaultSiteInfo = SiteInfo{
	Name: "Soumaya Boutique",
	Whatsapp: Whatsapp{
		Ligne1: "221771494747",
		Ligne2: "221779163200",
	},
	Email:   "contact@soumayaboutique.com",
	Address: "Dakar, Sénégal",
}

var DefaultHomeHero = HomeHero{
	Title:      "L'Art de l'Élégance Sénégalaise",
	Subtitle:   "Découvrez notre sélection exclusive de tissus raffinés, parfums envoûtants et accessoires de mode.",
	ButtonText: "Découvrir la boutique",
	ImageURL:   "https://images.unsplash.com/photo-1490481651871-ab68de25d43d?q=80&w=2070&auto=format&fit=crop",
}

var DefaultProductsHero = ProductsHero{
	Title:    "Nos Collections",
	Subtitle: "Explorez notre sélection unique de tissus, parfums et accessoires, choisis avec soin pour leur qualité et leur élégance.",
	ImageURL: "https://images.unsplash.com/photo-1523381210434-271e8be1f52b?q=80&w=2070&auto=format&fit=crop",
}

var DefaultAboutPage = AboutPage{
	HeroTitle:    "Notre Histoire",
	HeroSubtitle: "L'élégance et la tradition au service de votre style depuis plus de 10 ans.",
	Title:        "Une Histoire de Passion",
	Description:  "Chez Soumaya Boutique, nous célébrons la beauté et l'authenticité. Chaque pièce est choisie avec amour pour vous offrir le meilleur de la mode et de l'artisanat.",
}

var DefaultCollectionBadge = CollectionBadge{
	Text:    "Nouvelle Collection 2024",
	Visible: true,
}

var DefaultCategoriesSection = CategoriesSection{
	Title: "Nos Univers",
}

// Default pairs a key with its built-in value and the admin description.
type Default struct {
	Key         string
	Value       any
	Description string
}

func Defaults() []Default {
	return []Default{
		{KeySiteInfo, DefaultSiteInfo, "Informations générales du site"},
		{KeyHomeHero, DefaultHomeHero, "Section Hero de la page d'accueil"},
		{KeyProductsHero, DefaultProductsHero, "Section Hero de la page produits"},
		{KeyAboutPage, DefaultAboutPage, "Contenu de la section histoire de la page À propos"},
		{KeyCollectionBadge, DefaultCollectionBadge, "Badge affiché au-dessus du titre principal sur la page d'accueil"},
		{KeyCategoriesSection, DefaultCategoriesSection, "Section catégories de la page d'accueil"},
	}
}
