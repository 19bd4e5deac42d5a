package weather

// UnknownIcon is returned for any condition code missing from a provider's table.
const UnknownIcon = "?"

// Nerd Font weather glyphs. Day glyphs carry a trailing space to even out
// the rendered width in status bars.
const (
	glyphClearDay          = "\ue30d "
	glyphPartlyCloudyDay   = "\ue302 "
	glyphCloudyDay         = "\ue312 "
	glyphFogDay            = "\ue303 "
	glyphRainDay           = "\ue308 "
	glyphSnowDay           = "\ue30a "
	glyphSleetDay          = "\ue3aa "
	glyphThunderDay        = "\ue30f "
	glyphHailDay           = "\ue304 "
	glyphShowersDay        = "\ue309 "
	glyphSnowThunderDay    = "\ue367 "
	glyphClearNight        = "\ue32b"
	glyphPartlyCloudyNight = "\ue379"
	glyphCloudyNight       = "\ue312"
	glyphFogNight          = "\ue346"
	glyphRainNight         = "\ue325"
	glyphSnowNight         = "\ue327"
	glyphSleetNight        = "\ue3ac"
	glyphThunderNight      = "\ue32a"
	glyphHailNight         = "\ue321"
	glyphShowersNight      = "\ue334"
	glyphSnowThunderNight  = "\ue367"
)

type iconTable struct {
	day   map[int]string
	night map[int]string
}

// group expands code lists into a lookup map.
func group(pairs map[string][]int) map[int]string {
	m := make(map[int]string)
	for glyph, codes := range pairs {
		for _, c := range codes {
			m[c] = glyph
		}
	}
	return m
}

var (
	weatherAPIRain  = []int{1063, 1072, 1150, 1153, 1168, 1171, 1180, 1183, 1186, 1189, 1192, 1195, 1198, 1201}
	weatherAPISnow  = []int{1066, 1114, 1117, 1210, 1213, 1216, 1219, 1222, 1225, 1255, 1258}
	weatherAPISleet = []int{1069, 1204, 1207, 1249, 1252}

	openMeteoRain = []int{51, 53, 55, 56, 57, 61, 63, 65, 66, 67}
	openMeteoSnow = []int{71, 73, 75, 77, 85, 86}

	openWeatherThunder = []int{200, 201, 202, 210, 211, 212, 221, 230, 231, 232}
	openWeatherRain    = []int{300, 301, 302, 310, 311, 312, 313, 314, 321, 500, 501, 502, 503, 504}
	openWeatherShowers = []int{520, 521, 522, 531}
	openWeatherSnow    = []int{600, 601, 602, 620, 621, 622}
	openWeatherSleet   = []int{511, 611, 612, 613, 615, 616}
	openWeatherFog     = []int{701, 711, 721, 731, 741, 751, 761, 762}
)

var iconTables = map[ProviderID]iconTable{
	WeatherAPI: {
		day: group(map[string][]int{
			glyphClearDay:        {1000},
			glyphPartlyCloudyDay: {1003, 1009},
			glyphCloudyDay:       {1006},
			glyphFogDay:          {1030, 1135, 1147},
			glyphRainDay:         weatherAPIRain,
			glyphSnowDay:         weatherAPISnow,
			glyphSleetDay:        weatherAPISleet,
			glyphThunderDay:      {1087, 1273, 1276},
			glyphHailDay:         {1237, 1261, 1264},
			glyphShowersDay:      {1240, 1243, 1246},
			glyphSnowThunderDay:  {1279, 1282},
		}),
		night: group(map[string][]int{
			glyphClearNight:        {1000},
			glyphPartlyCloudyNight: {1003, 1009},
			glyphCloudyNight:       {1006},
			glyphFogNight:          {1030, 1135, 1147},
			glyphRainNight:         weatherAPIRain,
			glyphSnowNight:         weatherAPISnow,
			glyphSleetNight:        weatherAPISleet,
			glyphThunderNight:      {1087, 1273, 1276},
			glyphHailNight:         {1237, 1261, 1264},
			glyphShowersNight:      {1240, 1243, 1246},
			glyphSnowThunderNight:  {1279, 1282},
		}),
	},
	OpenMeteo: {
		day: group(map[string][]int{
			glyphClearDay:        {0},
			glyphPartlyCloudyDay: {1, 2, 3},
			glyphFogDay:          {45, 48},
			glyphRainDay:         openMeteoRain,
			glyphSnowDay:         openMeteoSnow,
			glyphShowersDay:      {80, 81, 82},
			glyphThunderDay:      {95, 96, 99},
		}),
		night: group(map[string][]int{
			glyphClearNight:        {0},
			glyphPartlyCloudyNight: {1, 2, 3},
			glyphFogNight:          {45, 48},
			glyphRainNight:         openMeteoRain,
			glyphSnowNight:         openMeteoSnow,
			glyphShowersNight:      {80, 81, 82},
			glyphThunderNight:      {95, 96, 99},
		}),
	},
	OpenWeather: {
		day: group(map[string][]int{
			glyphThunderDay:      openWeatherThunder,
			glyphRainDay:         openWeatherRain,
			glyphShowersDay:      openWeatherShowers,
			glyphSnowDay:         openWeatherSnow,
			glyphSleetDay:        openWeatherSleet,
			glyphFogDay:          openWeatherFog,
			glyphClearDay:        {800},
			glyphPartlyCloudyDay: {801, 802, 803},
			glyphCloudyDay:       {804},
		}),
		night: group(map[string][]int{
			glyphThunderNight:      openWeatherThunder,
			glyphRainNight:         openWeatherRain,
			glyphShowersNight:      openWeatherShowers,
			glyphSnowNight:         openWeatherSnow,
			glyphSleetNight:        openWeatherSleet,
			glyphFogNight:          openWeatherFog,
			glyphClearNight:        {800},
			glyphPartlyCloudyNight: {801, 802, 803},
			glyphCloudyNight:       {804},
		}),
	},
}

// IsDay interprets a provider day flag. Only 1 means day.
func IsDay(flag int) bool {
	return flag == 1
}

// Icon maps a provider condition code to its glyph. It never fails: codes
// outside the provider's table, and unknown providers, yield UnknownIcon.
// The tables are never written after package init, so Icon is safe for
// concurrent use.
func Icon(id ProviderID, isDay bool, code int) string {
	t, ok := iconTables[id]
	if !ok {
		return UnknownIcon
	}
	table := t.night
	if isDay {
		table = t.day
	}
	if glyph, ok := table[code]; ok {
		return glyph
	}
	return UnknownIcon
}
