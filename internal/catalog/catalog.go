// Package catalog holds the static list of sellable items: courses,
// spreadsheet templates and bundles. Pure data with lookup helpers;
// nothing here mutates after init.
package catalog

// Kind classifies a sellable item.
type Kind string

const (
	KindCourse   Kind = "course"
	KindTemplate Kind = "template"
	KindBundle   Kind = "bundle"
)

// Item is a sellable catalog entry.
type Item struct {
	ID               string   `json:"id"`
	Kind             Kind     `json:"kind"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description"`
	Description      string   `json:"description"`
	Price            float64  `json:"price"`
	OriginalPrice    float64  `json:"original_price"`
	Image            string   `json:"image"`
	Features         []string `json:"features"`

	// Components lists the item ids a bundle is composed of. Empty for
	// courses and templates.
	Components []string `json:"components,omitempty"`
}

var courses = []Item{
	{
		ID:               "excel-zero-to-hero",
		Kind:             KindCourse,
		Title:            "Dominando Excel: De 0 a Profesional",
		ShortDescription: "Domina la herramienta más poderosa del mundo laboral con este curso completo.",
		Description:      "Aprende Excel desde lo más básico hasta funciones avanzadas. Domina tablas dinámicas, macros y análisis de datos.",
		Price:            29,
		OriginalPrice:    89,
		Image:            "/images/excel-zero-to-hero.png",
		Features:         []string{"12 Recursos descargables", "Acceso en móviles y TV", "Certificado de finalización"},
	},
	{
		ID:               "data-analytics-intro",
		Kind:             KindCourse,
		Title:            "Introducción al Análisis de Datos",
		ShortDescription: "Conviértete en el analista que toda empresa busca.",
		Description:      "Transforma datos en decisiones. Aprende a limpiar, procesar y visualizar datos usando Excel y Power Query.",
		Price:            35,
		OriginalPrice:    99,
		Image:            "/images/data-analytics-intro.png",
		Features:         []string{"20 Recursos descargables", "Casos de estudio reales", "Exámenes de práctica"},
	},
	{
		ID:               "vba-automation",
		Kind:             KindCourse,
		Title:            "Automatización con VBA y Macros",
		ShortDescription: "Automatiza tu trabajo y ahorra horas cada día.",
		Description:      "Aprende a programar macros en VBA para automatizar tus reportes diarios.",
		Price:            45,
		OriginalPrice:    129,
		Image:            "/images/vba-automation.png",
		Features:         []string{"30 Scripts listos para copiar", "Acceso a comunidad privada", "Actualizaciones gratuitas"},
	},
	{
		ID:               "dashboard-masterclass",
		Kind:             KindCourse,
		Title:            "Masterclass de Dashboards Impactantes",
		ShortDescription: "Crea reportes que todos quieran leer y entender.",
		Description:      "Diseña paneles de control que cuenten historias con principios de diseño y visualización de datos.",
		Price:            39,
		OriginalPrice:    109,
		Image:            "/images/dashboard-masterclass.png",
		Features:         []string{"5 Plantillas Premium", "Guía de colores y tipografía", "Acceso ilimitado"},
	},
}

var templates = []Item{
	{
		ID:               "tracker-habitos",
		Kind:             KindTemplate,
		Title:            "Tracker de Hábitos",
		ShortDescription: "Controla y mejora tus hábitos diarios con estadísticas automáticas",
		Description:      "Seguimiento mensual con checkboxes, estadísticas de cumplimiento y barras de progreso visuales.",
		Price:            1,
		OriginalPrice:    15,
		Image:            "/images/habit-tracker.png",
		Features: []string{
			"Seguimiento de hasta 15 hábitos",
			"Calendario mensual interactivo",
			"Estadísticas automáticas",
			"Compatible con Excel y Google Sheets",
		},
	},
	{
		ID:               "planificador-financiero",
		Kind:             KindTemplate,
		Title:            "Planificador Financiero",
		ShortDescription: "Organiza tus finanzas personales con gráficos y reportes automáticos",
		Description:      "Registra ingresos y gastos por categoría, visualiza tu distribución de gastos y obtén insights sobre tu ahorro.",
		Price:            1,
		OriginalPrice:    20,
		Image:            "/images/financial-planner.png",
		Features: []string{
			"Dashboard con métricas clave",
			"Categorías personalizables",
			"Cálculo automático de ahorro",
			"Compatible con Excel y Google Sheets",
		},
	},
}

var bundles = []Item{
	{
		ID:               "pack-productividad",
		Kind:             KindBundle,
		Title:            "Pack Productividad Total",
		ShortDescription: "Las 2 planillas premium a un precio especial",
		Description:      "Obtén las 2 planillas premium a un precio especial. Controla tus hábitos y tus finanzas.",
		Price:            1.50,
		OriginalPrice:    35,
		Image:            "/images/pack-productividad.png",
		Features:         []string{"Tracker de Hábitos", "Planificador Financiero", "Ahorro del 33%"},
		Components:       []string{"tracker-habitos", "planificador-financiero"},
	},
}

// Courses returns the course catalog.
func Courses() []Item { return courses }

// Templates returns the spreadsheet template catalog.
func Templates() []Item { return templates }

// Bundles returns the bundle catalog.
func Bundles() []Item { return bundles }

// All returns every sellable item.
func All() []Item {
	out := make([]Item, 0, len(courses)+len(templates)+len(bundles))
	out = append(out, courses...)
	out = append(out, templates...)
	out = append(out, bundles...)
	return out
}

// ItemByID looks up any sellable item by id.
func ItemByID(id string) (Item, bool) {
	for _, it := range All() {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// BundleComponents expands a bundle into its component items. Unknown
// component ids are skipped.
func BundleComponents(bundle Item) []Item {
	items := make([]Item, 0, len(bundle.Components))
	for _, id := range bundle.Components {
		if it, ok := ItemByID(id); ok {
			items = append(items, it)
		}
	}
	return items
}
