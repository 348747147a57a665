package apperr

// Reason codes.
const (
	CodeAddressEmpty           = "errors.address.empty"
	CodeDateInvalidFormat      = "errors.date.invalid_format"
	CodeDateCalculationFailed  = "errors.date.calculation_failed"
	CodeGeocodeHTTPFailed      = "errors.geocode.http_failed"
	CodeGeocodeParseFailed     = "errors.geocode.parse_failed"
	CodeGeocodeNotFound        = "errors.geocode.not_found"
	CodeGeocodeLatitudeParse   = "errors.geocode.latitude_parse_failed"
	CodeGeocodeLongitudeParse  = "errors.geocode.longitude_parse_failed"
	CodeNetworkRequestFailed   = "errors.network.openstreetmap_request_failed"
	CodeSunriseGeneration      = "errors.sun_times.sunrise_generation_failed"
	CodeSunsetGeneration       = "errors.sun_times.sunset_generation_failed"
	CodeNextSunriseGeneration  = "errors.sun_times.next_sunrise_generation_failed"
	CodeLocationNotSaved       = "errors.auto_theme.location_not_saved"
	CodeLocationRequiredEnable = "errors.auto_theme.location_required_for_enable"
	CodeLocationRequiredQuery  = "errors.solar.location_required_for_query"
	CodeRegistryOpenFailed     = "errors.registry.open_failed"
	CodeRegistryCreateFailed   = "errors.registry.create_settings_failed"
	CodeWriteAppsThemeFailed   = "errors.registry.write_apps_theme_failed"
	CodeWriteSystemThemeFailed = "errors.registry.write_system_theme_failed"
	CodeSaveAddressFailed      = "errors.solar.save_address_failed"
	CodeSaveDisplayNameFailed  = "errors.solar.save_display_name_failed"
	CodeSaveLatitudeFailed     = "errors.solar.save_latitude_failed"
	CodeSaveLongitudeFailed    = "errors.solar.save_longitude_failed"
	CodeSaveAutoThemeFailed    = "errors.solar.save_auto_theme_enabled_failed"
	CodeStateFileReadFailed    = "errors.state.read_failed"
	CodeStateFileWriteFailed   = "errors.state.write_failed"
	CodeExecutablePathFailed   = "errors.startup.executable_path_failed"
)
