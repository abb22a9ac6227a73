package marker

// builtin is the monster hunt: exactly one pin per monster.
var builtin = []Marker{
	{
		ID: "bunyip", Name: "Bunyip", Country: "Australia", Continent: "Australia", Order: 1,
		Latitude: -25.0, Longitude: 133.0, Image: "/monsters/bunyip.png",
		Description: "Swamp-dwelling beast of Australian billabongs, said to drag unsuspecting travelers into the murky depths.",
	},
	{
		ID: "yeti", Name: "Himalayan Yeti", Country: "Nepal", Continent: "Asia", Order: 3,
		Latitude: 28.6, Longitude: 84.0, Image: "/monsters/yeti.png",
		Description: "A towering ice guardian roaming the high passes of the Himalayas, wrapped in snow and ancient legend.",
	},
	{
		ID: "kitsune", Name: "Kitsune", Country: "Japan", Continent: "Asia", Order: 2,
		Latitude: 36.2, Longitude: 138.0, Image: "/monsters/kitsune.png",
		Description: "A nine-tailed fox spirit that shifts between human and fox form, guarding sacred forests and shrines.",
	},
	{
		ID: "el-coco", Name: "El Coco", Country: "Spain", Continent: "Europe", Order: 5,
		Latitude: 40.4, Longitude: -3.7, Image: "/monsters/el_coco.png",
		Description: "A shadowy rooftop stalker that slips between chimneys and balconies, whispering fear into sleeping towns.",
	},
	{
		ID: "wendigo", Name: "Wendigo", Country: "USA", Continent: "North America", Order: 8,
		Latitude: 40.0, Longitude: -100.0, Image: "/monsters/wendigo.png",
		Description: "A gaunt, antlered spirit of hunger that prowls frozen forests, drawn to lost travelers and desperate souls.",
	},
	{
		ID: "chupacabra", Name: "Chupacabra", Country: "Mexico", Continent: "North America", Order: 9,
		Latitude: 23.6, Longitude: -102.5, Image: "/monsters/chupacabra.png",
		Description: "A spined desert predator said to drain the life from livestock under the glow of the moon.",
	},
	{
		ID: "mapinguari", Name: "Mapinguari", Country: "Brazil", Continent: "South America", Order: 10,
		Latitude: -3.0, Longitude: -60.0, Image: "/monsters/mapinguari.png",
		Description: "A one-eyed jungle colossus that crushes through the Amazon undergrowth, protecting the deepest forests.",
	},
	{
		ID: "amaru", Name: "Amaru", Country: "Peru", Continent: "South America", Order: 11,
		Latitude: -13.2, Longitude: -72.0, Image: "/monsters/amaru.png",
		Description: "A two-headed serpent-dragon spiraling above ancient ruins, weaving storms over the Andes.",
	},
	{
		ID: "embalabala", Name: "Embalabala", Country: "Uganda", Continent: "Africa", Order: 6,
		Latitude: 1.4, Longitude: 32.3, Image: "/monsters/embalabala.png",
		Description: "A were-leopard of the savanna, half human and half predator, hunting by the glow of a blood-red sunset.",
	},
	{
		ID: "asanbosam", Name: "Asanbosam", Country: "Ghana", Continent: "Africa", Order: 7,
		Latitude: 7.9, Longitude: -1.0, Image: "/monsters/asanbosam.png",
		Description: "A tree-dwelling vampire with iron hooks for feet, dropping silently from the canopy onto passing travelers.",
	},
	{
		ID: "ice-colossus", Name: "Ice Colossus, Leviathan of the Frozen Deep", Country: "Antarctica", Continent: "Antarctica", Order: 12,
		Latitude: -82.0, Longitude: 0.0, Image: "/monsters/ice_colossus.png",
		Description: "A towering titan of jagged ice rising from the fractured sea, final guardian of the world's frozen edge.",
	},
	{
		ID: "kraken", Name: "Kraken", Country: "Denmark", Continent: "Europe", Order: 4,
		Latitude: 55.7, Longitude: 12.6, Image: "/monsters/kraken.png",
		Description: "A colossal sea monster said to rise from the Danish coasts, dragging ships and sailors into the depths.",
	},
}

// Builtin returns the built-in monster dataset.
func Builtin() *Dataset {
	d, err := New(builtin)
	if err != nil {
		panic(err)
	}
	return d
}
