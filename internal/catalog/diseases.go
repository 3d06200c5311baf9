// Package catalog holds the static tomato disease reference shown to users.
package catalog

import "plantdefender/internal/models"

var diseases = []models.Disease{
	{
		ID:          "early-blight",
		Name:        "Early Blight",
		Description: "A common fungal disease caused by Alternaria solani affecting tomato plants.",
		Symptoms:    []string{"Dark brown spots with concentric rings on leaves", "Yellowing around spots", "Premature leaf drop"},
		Causes:      []string{"Warm, humid conditions", "Poor air circulation", "Infected plant debris"},
		Treatment:   "Remove infected leaves, apply fungicide (copper-based or chlorothalonil), improve air circulation.",
		Prevention:  []string{"Crop rotation", "Mulching to prevent soil splash", "Proper spacing", "Remove plant debris"},
	},
	{
		ID:          "late-blight",
		Name:        "Late Blight",
		Description: "Devastating disease caused by Phytophthora infestans, can destroy entire crops.",
		Symptoms:    []string{"Water-soaked spots on leaves", "White fungal growth on undersides", "Brown lesions on stems and fruit"},
		Causes:      []string{"Cool, wet weather", "High humidity", "Infected transplants"},
		Treatment:   "Remove infected plants immediately, apply fungicide (copper or mancozeb), ensure good drainage.",
		Prevention:  []string{"Plant resistant varieties", "Avoid overhead watering", "Good air circulation", "Regular monitoring"},
	},
	{
		ID:          "leaf-mold",
		Name:        "Leaf Mold",
		Description: "Fungal disease caused by Passalora fulva, common in greenhouse tomatoes.",
		Symptoms:    []string{"Yellow spots on upper leaf surfaces", "Olive-green to brown fuzzy growth underneath", "Leaf curling and death"},
		Causes:      []string{"High humidity (above 85%)", "Poor ventilation", "Dense plant canopy"},
		Treatment:   "Reduce humidity, improve ventilation, apply fungicide if severe, remove affected leaves.",
		Prevention:  []string{"Adequate spacing", "Good ventilation", "Lower humidity", "Plant resistant varieties"},
	},
	{
		ID:          "septoria-leaf-spot",
		Name:        "Septoria Leaf Spot",
		Description: "Fungal disease caused by Septoria lycopersici affecting lower leaves.",
		Symptoms:    []string{"Small circular spots with dark borders", "Gray centers", "Black specks in center"},
		Causes:      []string{"Warm, wet conditions", "Splash from rain or irrigation", "Infected debris"},
		Treatment:   "Remove infected leaves, apply fungicide, mulch around plants, avoid wetting foliage.",
		Prevention:  []string{"Crop rotation", "Staking plants", "Watering at base", "Remove lower leaves"},
	},
	{
		ID:          "bacterial-spot",
		Name:        "Bacterial Spot",
		Description: "Bacterial disease affecting leaves, stems, and fruit.",
		Symptoms:    []string{"Small dark brown spots", "Yellow halos around spots", "Leaf drop", "Fruit lesions"},
		Causes:      []string{"Warm, wet weather", "Contaminated seeds", "Infected transplants"},
		Treatment:   "Apply copper-based bactericide, remove infected plants, avoid overhead watering.",
		Prevention:  []string{"Use disease-free seeds", "Crop rotation", "Avoid working with wet plants", "Good sanitation"},
	},
	{
		ID:          "mosaic-virus",
		Name:        "Tomato Mosaic Virus",
		Description: "Viral disease causing mottled leaves and reduced yield.",
		Symptoms:    []string{"Mottled light and dark green leaves", "Stunted growth", "Distorted leaves", "Reduced fruit set"},
		Causes:      []string{"Infected seeds or transplants", "Mechanical transmission", "Contaminated tools"},
		Treatment:   "No cure - remove and destroy infected plants immediately to prevent spread.",
		Prevention:  []string{"Use resistant varieties", "Sanitize tools", "Control aphids", "Buy certified disease-free plants"},
	},
}

// Diseases returns a copy of the catalog so callers cannot mutate it.
func Diseases() []models.Disease {
	out := make([]models.Disease, len(diseases))
	for i, d := range diseases {
		d.Symptoms = append([]string(nil), d.Symptoms...)
		d.Causes = append([]string(nil), d.Causes...)
		d.Prevention = append([]string(nil), d.Prevention...)
		out[i] = d
	}
	return out
}
