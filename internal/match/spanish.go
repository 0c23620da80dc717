package match

// Spanish vocabulary driving name normalization and score adjustment.
// Customer names in order emails mix trade synonyms ("almacenes" vs
// "materiales"), legal-entity suffix spellings, and gendered given-name
// variants; these tables collapse each family to one canonical form.

// businessSynonyms maps trade-term variants to their canonical token.
var businessSynonyms = map[string]string{
	"almacenes":      "materiales",
	"almacen":        "materiales",
	"suministros":    "materiales",
	"distribuciones": "distribuidor",
	"distribuidora":  "distribuidor",
	"construcciones": "construccion",
	"comercial":      "comercio",
}

// legalSuffixes maps legal-entity suffix spellings (after trailing
// punctuation is trimmed from the token) to their canonical form.
var legalSuffixes = map[string]string{
	"s.l.u": "sl",
	"s.l.l": "sl",
	"s.l":   "sl",
	"slu":   "sl",
	"sll":   "sl",
	"s.a":   "sa",
	"s.c":   "sc",
}

// businessKeywords flag a name as a business when present as a substring.
var businessKeywords = []string{
	"materiales", "almacen", "suministros", "distribuidor", "distribuciones",
	"distribuidora", "construccion", "construcciones", "comercio", "comercial",
}

// buyingGroupKeywords indicate purchasing-consortium membership. A keyword
// shared by both sides of a business pair boosts the match score.
var buyingGroupKeywords = []string{
	"gamma",
	"gremio",
	"grupo",
	"cadena",
	"asociacion",
}

// genderedNames pairs masculine and feminine spellings of Spanish given
// names. Both directions are present so either spelling normalizes to the
// lexicographically smaller form.
var genderedNames = map[string]string{
	"antonio":   "antonia",
	"francisco": "francisca",
	"jose":      "josefa",
	"juan":      "juana",
	"carlos":    "carla",
	"daniel":    "daniela",
	"pablo":     "paula",
	"angel":     "angela",
	"manuel":    "manuela",
	"andres":    "andrea",
	"mario":     "maria",
	"alejandro": "alejandra",
	"roberto":   "roberta",
	"alberto":   "alberta",
	"fernando":  "fernanda",
	"luis":      "luisa",
	"miguel":    "miguela",
	"rafael":    "rafaela",
	"sergio":    "sergia",
	"diego":     "diega",

	"antonia":   "antonio",
	"francisca": "francisco",
	"josefa":    "jose",
	"juana":     "juan",
	"carla":     "carlos",
	"daniela":   "daniel",
	"paula":     "pablo",
	"angela":    "angel",
	"manuela":   "manuel",
	"andrea":    "andres",
	"maria":     "mario",
	"alejandra": "alejandro",
	"roberta":   "roberto",
	"alberta":   "alberto",
	"fernanda":  "fernando",
	"luisa":     "luis",
	"miguela":   "miguel",
	"rafaela":   "rafael",
	"sergia":    "sergio",
	"diega":     "diego",
}

// commonGivenNames are generic given names that carry little matching
// signal; a pair sharing only these is slightly penalized.
var commonGivenNames = map[string]bool{
	"maria": true, "jose": true, "antonio": true, "francisco": true,
	"juan": true, "manuel": true, "david": true, "jesus": true,
	"javier": true, "daniel": true, "carlos": true, "miguel": true,
	"rafael": true, "pedro": true, "angel": true, "alejandro": true,
	"fernando": true, "pablo": true, "sergio": true, "jorge": true,
	"luis": true,
	"antonia": true, "ana": true, "carmen": true, "dolores": true,
	"isabel": true, "pilar": true, "josefa": true, "francisca": true,
	"rosa": true, "teresa": true, "mercedes": true, "cristina": true,
	"laura": true, "marta": true, "paula": true, "lucia": true,
	"andrea": true, "sara": true, "elena": true, "patricia": true,
	"raquel": true,
}

// commonSurnames are surnames specific enough that sharing one raises
// confidence in a personal-name match.
var commonSurnames = map[string]bool{
	"garcia": true, "rodriguez": true, "martinez": true, "lopez": true,
	"gonzalez": true, "hernandez": true, "perez": true, "sanchez": true,
	"ramirez": true, "torres": true, "flores": true, "rivera": true,
	"gomez": true, "diaz": true, "cruz": true, "morales": true,
	"reyes": true, "gutierrez": true, "ortiz": true, "chavez": true,
	"ruiz": true, "alvarez": true, "castillo": true, "jimenez": true,
	"moreno": true, "romero": true, "vargas": true, "fernandez": true,
	"suarez": true, "ramos": true, "vazquez": true, "mendez": true,
	"castro": true, "rojas": true, "barroso": true, "sevilla": true,
	"navarro": true, "medina": true, "aguilar": true, "cortes": true,
	"silva": true,
}
