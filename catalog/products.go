package catalog

import "github.com/raushankrgupta/glow-studio/models"

var builtIn = []models.Product{
	{ID: "f-1", Brand: "Rare Beauty", Category: models.CategoryFoundation, Name: "Liquid Touch", Color: "110N", Hex: "#f9e6d4", Finish: models.FinishNatural, Description: "Weightless foundation."},
	{ID: "f-2", Brand: "Rare Beauty", Category: models.CategoryFoundation, Name: "Liquid Touch", Color: "210N", Hex: "#e8c0a0", Finish: models.FinishNatural, Description: "Medium neutral."},
	{ID: "f-3", Brand: "NARS", Category: models.CategoryFoundation, Name: "Sheer Glow", Color: "Mont Blanc", Hex: "#f7dfce", Finish: models.FinishDewy, Description: "Brightening foundation."},
	{ID: "f-4", Brand: "NARS", Category: models.CategoryFoundation, Name: "Sheer Glow", Color: "Syracuse", Hex: "#c58d59", Finish: models.FinishDewy, Description: "Warm tan."},
	{ID: "f-5", Brand: "MAC", Category: models.CategoryFoundation, Name: "Studio Fix", Color: "NW15", Hex: "#f5d9c1", Finish: models.FinishMatte, Description: "Full coverage."},
	{ID: "f-6", Brand: "MAC", Category: models.CategoryFoundation, Name: "Studio Fix", Color: "NW45", Hex: "#633e2a", Finish: models.FinishMatte, Description: "Deep warm."},
	{ID: "f-7", Brand: "Estée Lauder", Category: models.CategoryFoundation, Name: "Double Wear", Color: "1N1 Ivory Nude", Hex: "#f6dcc1", Finish: models.FinishMatte, Description: "Stay-in-place foundation."},
	{ID: "f-8", Brand: "Estée Lauder", Category: models.CategoryFoundation, Name: "Double Wear", Color: "4W1 Honey Bronze", Hex: "#bd8b5f", Finish: models.FinishMatte, Description: "Long-wear full coverage."},
	{ID: "l-1", Brand: "Charlotte Tilbury", Category: models.CategoryLipstick, Name: "Matte Revolution", Color: "Pillow Talk", Hex: "#dcae96", Finish: models.FinishMatte, Description: "The cult classic pink."},
	{ID: "l-2", Brand: "Charlotte Tilbury", Category: models.CategoryLipstick, Name: "Matte Revolution", Color: "Walk of No Shame", Hex: "#954b4d", Finish: models.FinishMatte, Description: "Berry rose."},
	{ID: "l-3", Brand: "Dior", Category: models.CategoryLipstick, Name: "Rouge Dior", Color: "999 Velvet", Hex: "#bc1e22", Finish: models.FinishSatin, Description: "Iconic red."},
	{ID: "l-4", Brand: "Chanel", Category: models.CategoryLipstick, Name: "Rouge Allure", Color: "Pirate", Hex: "#8a0a14", Finish: models.FinishSatin, Description: "Timeless deep red."},
	{ID: "l-5", Brand: "Fenty", Category: models.CategoryLipstick, Name: "Stunna Lip Paint", Color: "Uncensored", Hex: "#c60c30", Finish: models.FinishMatte, Description: "Universal red."},
	{ID: "l-6", Brand: "MAC", Category: models.CategoryLipstick, Name: "Retro Matte", Color: "Ruby Woo", Hex: "#ba0020", Finish: models.FinishMatte, Description: "Vivid blue-red."},
	{ID: "l-7", Brand: "MAC", Category: models.CategoryLipstick, Name: "Matte Lipstick", Color: "Velvet Teddy", Hex: "#b37f6a", Finish: models.FinishMatte, Description: "Deep-tone beige."},
	{ID: "l-8", Brand: "MAC", Category: models.CategoryLipstick, Name: "Amplified", Color: "Girl About Town", Hex: "#d12d6e", Finish: models.FinishSatin, Description: "Bright blue-fuchsia."},
	{ID: "l-9", Brand: "Rare Beauty", Category: models.CategoryLipstick, Name: "Lip Soufflé", Color: "Inspire", Hex: "#e34d3d", Finish: models.FinishMatte, Description: "Bright red orange."},
	{ID: "l-10", Brand: "Rare Beauty", Category: models.CategoryLipstick, Name: "Lip Soufflé", Color: "Fearless", Hex: "#844d4d", Finish: models.FinishMatte, Description: "Deep mauve rose."},
	{ID: "l-11", Brand: "Maybelline", Category: models.CategoryLipstick, Name: "SuperStay Vinyl Ink", Color: "Coy", Hex: "#b56d81", Finish: models.FinishGlossy, Description: "Long-wear pink mauve."},
	{ID: "l-12", Brand: "Maybelline", Category: models.CategoryLipstick, Name: "SuperStay Vinyl Ink", Color: "Red-Hot", Hex: "#c41e1e", Finish: models.FinishGlossy, Description: "Bright saturated red."},
	{ID: "l-13", Brand: "YSL", Category: models.CategoryLipstick, Name: "Rouge Volupté", Color: "Nude Lavallière", Hex: "#d9978b", Finish: models.FinishGlossy, Description: "Shine oil-in-stick."},
	{ID: "l-14", Brand: "YSL", Category: models.CategoryLipstick, Name: "Rouge Pur Couture", Color: "Le Rouge", Hex: "#b51111", Finish: models.FinishSatin, Description: "The quintessential red."},
	{ID: "l-15", Brand: "NARS", Category: models.CategoryLipstick, Name: "Powermatte", Color: "Dragon Girl", Hex: "#bd132a", Finish: models.FinishMatte, Description: "Vivid siren red."},
	{ID: "l-16", Brand: "NARS", Category: models.CategoryLipstick, Name: "Powermatte", Color: "American Woman", Hex: "#a66e6e", Finish: models.FinishMatte, Description: "Chestnut rose."},
	{ID: "l-17", Brand: "Pat McGrath", Category: models.CategoryLipstick, Name: "MatteTrance", Color: "Flesh 3", Hex: "#7a3b3b", Finish: models.FinishMatte, Description: "Deep bronzed rose."},
	{ID: "l-18", Brand: "Pat McGrath", Category: models.CategoryLipstick, Name: "MatteTrance", Color: "Elson", Hex: "#9e1414", Finish: models.FinishMatte, Description: "Blue-red perfection."},
	{ID: "l-19", Brand: "Sephora Collection", Category: models.CategoryLipstick, Name: "Cream Lip Stain", Color: "Always Red", Hex: "#b00000", Finish: models.FinishMatte, Description: "Classic true red."},
	{ID: "l-20", Brand: "Sephora Collection", Category: models.CategoryLipstick, Name: "Cream Lip Stain", Color: "Marvelous Mauve", Hex: "#9c6b73", Finish: models.FinishMatte, Description: "Dusty rose mauve."},
	{ID: "b-1", Brand: "Glossier", Category: models.CategoryBlush, Name: "Cloud Paint", Color: "Puff", Hex: "#f3c7c4", Finish: models.FinishMatte, Description: "Baby pink."},
	{ID: "b-2", Brand: "Glossier", Category: models.CategoryBlush, Name: "Cloud Paint", Color: "Storm", Hex: "#8b4b4b", Finish: models.FinishMatte, Description: "Dried rose."},
	{ID: "b-3", Brand: "Rare Beauty", Category: models.CategoryBlush, Name: "Soft Pinch", Color: "Hope", Hex: "#e4a5a2", Finish: models.FinishDewy, Description: "Nude mauve."},
	{ID: "b-4", Brand: "NARS", Category: models.CategoryBlush, Name: "Powder Blush", Color: "Orgasm", Hex: "#f2a899", Finish: models.FinishShimmer, Description: "Peachy pink with gold shimmer."},
	{ID: "e-1", Brand: "Urban Decay", Category: models.CategoryEyeshadow, Name: "Moondust", Color: "Space Cowboy", Hex: "#d9c5b2", Finish: models.FinishShimmer, Description: "Wet-look sparkle."},
	{ID: "e-2", Brand: "Urban Decay", Category: models.CategoryEyeshadow, Name: "Moondust", Color: "Lithium", Hex: "#4e433a", Finish: models.FinishShimmer, Description: "Gunmetal taupe."},
	{ID: "e-3", Brand: "Stila", Category: models.CategoryEyeliner, Name: "Stay All Day", Color: "Intense Black", Hex: "#000000", Finish: models.FinishMatte, Description: "Liquid waterproof liner."},
	{ID: "e-4", Brand: "Stila", Category: models.CategoryEyeliner, Name: "Stay All Day", Color: "Midnight Blue", Hex: "#001b4d", Finish: models.FinishMatte, Description: "Deep navy liner."},
}

// spectrum is the palette offered when a user mixes a custom shade
var spectrum = []string{
	"#FFB6C1", "#FF69B4", "#FF1493", "#DB7093", "#C71585",
	"#FFA07A", "#FF7F50", "#FF6347", "#FF4500", "#FF0000",
	"#800000", "#8B0000", "#A52A2A", "#B22222", "#DC143C",
	"#E6E6FA", "#D8BFD8", "#DDA0DD", "#EE82EE", "#DA70D6",
	"#BA55D3", "#9932CC", "#9400D3", "#8A2BE2", "#4B0082",
	"#F5F5DC", "#FFE4C4", "#FFDEAD", "#F5DEB3", "#DEB887",
	"#D2B48C", "#BC8F8F", "#F4A460", "#DAA520", "#B8860B",
}
