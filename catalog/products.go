package catalog

import "github.com/fitgear/fitgear-api/models"

const imageBase = "https://images.unsplash.com/"

// DefaultProducts is the FitGear launch catalog, in display order.
func DefaultProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Premium Training Shoes", Description: "High-performance training shoes with superior cushioning and support.", Price: 15999, Image: imageBase + "photo-1542291026-7eec264c27ff", Category: string(CategoryTrainers), Position: 1},
		{ID: "2", Name: "Adjustable Dumbbell Set", Description: "Space-saving adjustable dumbbells perfect for home workouts.", Price: 35999, Image: imageBase + "photo-1583454110551-21f2fa2afe61", Category: string(CategoryGear), Position: 2},
		{ID: "3", Name: "Premium Yoga Mat", Description: "Extra thick, non-slip yoga mat for maximum comfort and stability.", Price: 5999, Image: imageBase + "photo-1601925260368-ae2f83cf8b7f", Category: string(CategoryGear), Position: 3},
		{ID: "4", Name: "Running Shoes", Description: "Lightweight running shoes with responsive cushioning.", Price: 18999, Image: imageBase + "photo-1539185441755-769473a23570", Category: string(CategoryTrainers), Position: 4},
		{ID: "5", Name: "Whey Protein Powder", Description: "Premium whey protein for muscle recovery and growth.", Price: 8999, Image: imageBase + "photo-1593095948071-474c5cc2989d", Category: string(CategorySupplements), Position: 5},
		{ID: "6", Name: "Pre-Workout Energy", Description: "Advanced pre-workout formula for maximum performance.", Price: 5999, Image: imageBase + "photo-1594882645126-14020914d58d", Category: string(CategorySupplements), Position: 6},
		{ID: "7", Name: "Sports Water Bottle", Description: "Insulated stainless steel bottle for hydration.", Price: 2999, Image: imageBase + "photo-1523362628745-0c100150b504", Category: string(CategoryAccessories), Position: 7},
		{ID: "8", Name: "Fitness Tracker Watch", Description: "Smart fitness tracker for monitoring workouts.", Price: 12999, Image: imageBase + "photo-1575311373937-040b8e1fd5b6", Category: string(CategoryAccessories), Position: 8},
		{ID: "9", Name: "BCAA Supplement", Description: "Branch Chain Amino Acids for muscle recovery.", Price: 4999, Image: imageBase + "photo-1594882645126-14020914d58d", Category: string(CategorySupplements), Position: 9},
		{ID: "10", Name: "Gym Bag", Description: "Spacious and durable gym bag with compartments.", Price: 6999, Image: imageBase + "photo-1553062407-98eeb64c6a62", Category: string(CategoryAccessories), Position: 10},
	}
}

// Find returns the product with the given id from products.
func Find(products []models.Product, id string) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
