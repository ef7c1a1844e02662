package bandtype

// Satellite display names used in plot titles and merged CSV names.
const (
	Landsat4Name = "Landsat 4"
	Landsat5Name = "Landsat 5"
	Landsat7Name = "Landsat 7"
	TerraName    = "Terra"
	AquaName     = "Aqua"
)

// SensorGlob pairs a filename glob with the display name of the sensor whose
// scenes it matches.
type SensorGlob struct {
	Pattern    string
	SensorName string
}

// Group is one band type's catalog entry: its display label and the ordered
// list of per-sensor globs that collect its stat files.
type Group struct {
	BandType string
	Globs    []SensorGlob
}

func landsatGlobs(suffix string) []SensorGlob {
	return []SensorGlob{
		{"LT4*" + suffix, Landsat4Name},
		{"LT5*" + suffix, Landsat5Name},
		{"LE7*" + suffix, Landsat7Name},
	}
}

func modisGlobs(suffix string) []SensorGlob {
	return []SensorGlob{
		{"MOD*" + suffix, TerraName},
		{"MYD*" + suffix, AquaName},
	}
}

// sr builds a surface-reflectance group joining a Landsat SR band with the
// MODIS band it maps to.
func sr(bandType, landsatBand, modisBand string) Group {
	return Group{
		BandType: bandType,
		Globs: append(
			landsatGlobs("_sr_band"+landsatBand+".stats"),
			modisGlobs("sur_refl*"+modisBand+".stats")...),
	}
}

func toa(bandType, band string) Group {
	return Group{BandType: bandType, Globs: landsatGlobs("_toa_band" + band + ".stats")}
}

func emis(bandType, band string) Group {
	return Group{BandType: bandType, Globs: modisGlobs("Emis_" + band + ".stats")}
}

func index(bandType, landsatSuffix, modisSuffix string) Group {
	g := Group{BandType: bandType, Globs: landsatGlobs(landsatSuffix)}
	if modisSuffix != "" {
		g.Globs = append(g.Globs, modisGlobs(modisSuffix)...)
	}
	return g
}

// Catalog returns the fixed, ordered list of band-type groups processed in
// one run. MODIS and Landsat band numbers differ; the SR entries pair each
// Landsat SR band with its MODIS equivalent (e.g. Landsat band 3 and MODIS
// band 1 are both the red band).
func Catalog() []Group {
	return []Group{
		sr("SR Blue", "1", "3"),
		sr("SR Green", "2", "4"),
		sr("SR Red", "3", "1"),
		sr("SR NIR", "4", "2"),
		sr("SR SWIR1", "5", "6"),
		sr("SR SWIR2", "7", "7"),

		// MODIS SR band 5 has no Landsat counterpart
		{BandType: "SR SWIR B5", Globs: modisGlobs("sur_refl*b05.stats")},

		// Landsat TOA band 6 is thermal; displayed under the SR family
		{BandType: "SR Thermal", Globs: landsatGlobs("_toa_band6.stats")},

		toa("TOA Blue", "1"),
		toa("TOA Green", "2"),
		toa("TOA Red", "3"),
		toa("TOA NIR", "4"),
		toa("TOA SWIR1", "5"),
		toa("TOA SWIR2", "7"),

		emis("Emis Band 20", "20"),
		emis("Emis Band 22", "22"),
		emis("Emis Band 23", "23"),
		emis("Emis Band 29", "29"),
		emis("Emis Band 31", "31"),
		emis("Emis Band 32", "32"),

		{BandType: "LST Day", Globs: modisGlobs("LST_Day_*.stats")},
		{BandType: "LST Night", Globs: modisGlobs("LST_Night_*.stats")},

		index("NDVI", "_sr_ndvi.stats", "_NDVI.stats"),
		index("EVI", "_sr_evi.stats", "_EVI.stats"),
		index("SAVI", "_sr_savi.stats", ""),
		index("MSAVI", "_sr_msavi.stats", ""),
		index("NBR", "_sr_nbr.stats", ""),
		index("NBR2", "_sr_nbr2.stats", ""),
		index("NDMI", "_sr_ndmi.stats", ""),
	}
}
