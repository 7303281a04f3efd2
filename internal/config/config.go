package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used to fetch remote vCard sources.
var UserAgent = "Go-CalendarView/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go CalendarView"
	AppID             = "com.github.tartampluch.go-calendarview"
	CLIName           = "calgrid"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion       = "version"
	FlagDebug         = "debug"
	FlagConfig        = "config"
	FlagWeekStart     = "week-start"
	FlagNoLunar       = "no-lunar"
	FlagNoHoliday     = "no-holiday"
	FlagFormat        = "format"
	FlagPort          = "port"
	FlagMonth         = "month"
	FlagLang          = "lang"
	FlagDescVersion   = "Show application version and exit"
	FlagDescDebug     = "Enable debug logging"
	FlagDescConfig    = "Settings file path (yaml)"
	FlagDescWeekStart = "First day of the week (monday..sunday)"
	FlagDescNoLunar   = "Hide lunar calendar labels"
	FlagDescNoHoliday = "Hide holiday and festival labels"
	FlagDescFormat    = "Output format: text, json or ics"
	FlagDescPort      = "Feed server port"
	FlagDescMonth     = "Month to open (yyyy-mm), today's month if empty"
	FlagDescLang      = "Language of the weekday header (en, zh)"
	MsgVersionOutput  = "%s version %s (%s/%s)\n"

	FormatText = "text"
	FormatJSON = "json"
	FormatICS  = "ics"
)

// -----------------------------------------------------------------------------
// CLI Commands
// -----------------------------------------------------------------------------

const (
	CmdMonthUse   = "month [year] [month]"
	CmdMonthShort = "Print the grid of a month (current month by default)"
	CmdDayUse     = "day <yyyy-mm-dd>"
	CmdDayShort   = "Print the lunar date and observances of a day"
	CmdServeUse   = "serve"
	CmdServeShort = "Serve the current month as an iCalendar feed"
	CmdRootShort  = "Month grids with lunar dates and holidays"

	// Labels of the day command
	DayLabelLunar    = "Lunar"
	DayLabelTerm     = "Solar term"
	DayLabelHoliday  = "Holiday"
	DayLabelFestival = "Lunar festival"
	DayLabelBirthday = "Birthdays"
	DayLineFormat    = "%-16s%s\n"
)

// -----------------------------------------------------------------------------
// Calendar Defaults & Limits
// -----------------------------------------------------------------------------

const (
	DaysPerWeek    = 7
	MonthsPerYear  = 12
	DefaultPort    = "18081"
	DefaultLang    = "en"
	DefaultWeekDay = "monday"

	// BaseYear and BaseMonth anchor page index 0 of the month pager.
	BaseYear  = 1901
	BaseMonth = 1

	// LunarMinYear and LunarMaxYear bound the years accepted by the lunar converter.
	LunarMinYear = 1900
	LunarMaxYear = 2100

	DefaultLeapYear  = 2000 // Leap year fallback for year-less birthdays like --02-29
	UIDSalt          = "go-calendarview-v1"
	LunarMonthSuffix = "月"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "zh"}

// WeekStartNames lists the accepted week start values, Sunday first as in time.Weekday.
var WeekStartNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// -----------------------------------------------------------------------------
// Settings File (calgrid)
// -----------------------------------------------------------------------------

const (
	SettingsEnvPrefix = "CALGRID"
	SettingsFileName  = "calgrid"
	SettingsFileType  = "yaml"

	SettingLanguage    = "language"
	SettingWeekStart   = "week_start"
	SettingShowLunar   = "show_lunar"
	SettingShowHoliday = "show_holiday"
	SettingPort        = "port"
	SettingBirthdays   = "birthdays"
	SettingHolidays    = "holidays"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 560
	MainWindowHeight    = 480
	SettingsWindowWidth = 520
	WeekRowHeight       = 64
	YearEntryMaxLen     = 4
	PortEntryMaxLen     = 5

	AnnotationsWinWidth  = 480
	AnnotationsWinHeight = 420
	ColWidthDate         = 110
	ColWidthKind         = 120
	ColWidthSummary      = 220
	TablePlaceholder     = "Placeholder Text"
	SortIconAsc          = " ▲"
	SortIconDesc         = " ▼"

	// Column identifiers of the month overview table
	ColIDDate    = 0
	ColIDKind    = 1
	ColIDSummary = 2

	PrefLanguage    = "language"
	PrefWeekStart   = "week_start"
	PrefShowLunar   = "show_lunar"
	PrefShowHoliday = "show_holiday"
	PrefServerPort  = "server_port"
	PrefServeFeed   = "serve_feed"
	PrefBirthdays   = "birthday_source"
	PrefLastRun     = "last_run_version"

	DateFormatDisplay = "2006-01-02"
	DateFormatMonth   = "2006-01"
	PlaceholderSource = "~/contacts.vcf or https://..."
	DetailSeparator   = " · "
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeySettingsTitle = "win_settings_title"
	TKeyMonthTitle    = "month_title" // Requires Year, Month, MonthName
	TKeyBtnPrev       = "btn_prev"
	TKeyBtnNext       = "btn_next"
	TKeyBtnToday      = "btn_today"
	TKeyBtnGo         = "btn_go"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyBtnBrowse     = "btn_browse"
	TKeyMenuOpen      = "menu_open"
	TKeyMenuSettings  = "menu_settings"
	TKeyTrayToday     = "tray_today" // Requires Date, Lunar
	TKeyLblLanguage   = "lbl_language"
	TKeyLblWeekStart  = "lbl_week_start"
	TKeyLblShowLunar  = "lbl_show_lunar"
	TKeyLblShowHol    = "lbl_show_holiday"
	TKeyLblDisplay    = "lbl_display"
	TKeyLblFeed       = "lbl_feed"
	TKeyLblServeFeed  = "lbl_serve_feed"
	TKeyLblPort       = "lbl_server_port"
	TKeyHelpPort      = "help_port"
	TKeyLblBirthdays  = "lbl_birthdays"
	TKeyHelpBirthdays = "help_birthdays"
	TKeyLblFooter     = "lbl_footer"
	TKeyLblYear       = "lbl_year"
	TKeyLblSelected   = "lbl_selected" // Requires Date, Detail
	TKeyErrPortReq    = "err_port_required"
	TKeyErrPortNum    = "err_port_number"
	TKeyErrPortRange  = "err_port_range"
	TKeyErrYear       = "err_year"

	// Month overview table
	TKeyWinAnnotations  = "win_annotations"
	TKeyMenuAnnotations = "menu_annotations"
	TKeyColDate         = "col_date"
	TKeyColKind         = "col_kind"
	TKeyColSummary      = "col_summary"
	TKeyKindSolar       = "kind_solar_holiday"
	TKeyKindLunar       = "kind_lunar_festival"
	TKeyKindTerm        = "kind_solar_term"
	TKeyKindBirthday    = "kind_birthday"

	// Weekday short names, Sunday first to match time.Weekday.
	TKeyWeekdaySun = "weekday_sun"
	TKeyWeekdayMon = "weekday_mon"
	TKeyWeekdayTue = "weekday_tue"
	TKeyWeekdayWed = "weekday_wed"
	TKeyWeekdayThu = "weekday_thu"
	TKeyWeekdayFri = "weekday_fri"
	TKeyWeekdaySat = "weekday_sat"
)

// WeekdayKeys maps time.Weekday to its translation key.
var WeekdayKeys = [DaysPerWeek]string{
	TKeyWeekdaySun, TKeyWeekdayMon, TKeyWeekdayTue, TKeyWeekdayWed,
	TKeyWeekdayThu, TKeyWeekdayFri, TKeyWeekdaySat,
}

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go CalendarView//Engine//EN"
	ICalCalName = "Holidays & Festivals"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gocalendarview"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropCategories = "CATEGORIES"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	CategorySolarHoliday = "solar-holiday"
	CategoryLunarHoliday = "lunar-festival"
	CategorySolarTerm    = "solar-term"
	CategoryBirthday     = "birthday"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	FormatUID = "%s@%s"

	// StubVCalendar is the minimal valid iCalendar object used when a month has no annotations.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	MinPort = 1
	MaxPort = 65535

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtICS   = ".ics"
	ExtJSON  = ".json"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	TodayCheckInterval  = time.Minute
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 32 * 1024 * 1024 // 32MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"

	RouteRoot  = "/"
	RouteMonth = "/months/{year}/{file}" // file is "<month>.ics" or "<month>.json"
	ParamYear  = "year"
	ParamFile  = "file"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidArgument  = "invalid argument"
	ErrOutOfRange       = "out of range"
	ErrInvalidMonth     = "month must be between 1 and 12"
	ErrInvalidDay       = "day does not exist in month"
	ErrLunarRange       = "year outside the supported lunar range"
	ErrInvalidWeekStart = "unknown week start"
	ErrSourceEmpty      = "configuration error: birthday source is empty"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrJSONEncode       = "failed to encode month grid"
	ErrDateParse        = "unable to parse date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrSettingsRead     = "failed to read settings"
	ErrSettingsDecode   = "failed to decode settings"
	ErrSettingsInvalid  = "invalid settings"
	ErrHolidayDate      = "holiday date does not exist"
	ErrBuildGrid        = "failed to build month grid"
	ErrLoadBirthdays    = "failed to load birthdays"
	ErrUnknownFormat    = "unknown output format"
	ErrPublishFeed      = "failed to publish month feed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgBadRequest   = "Bad Request"
	HTTPMsgNotFound     = "Not Found"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackMonthTitle = "%s %d"
	FallbackTrayLabel  = "Go CalendarView"
	FallbackName       = "Unknown"

	TitleStartupError = "Startup Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgAppStarting     = "Starting application"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Calendar feed updated"
	MsgGridBuilt       = "Month grid built"
	MsgPageChanged     = "Month page changed"
	MsgDaySelected     = "Day selected"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping invalid date format"
	MsgBirthdaysLoaded = "Birthday markers loaded"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgSettingsSaved   = "Saving preferences"
	MsgSettingsOpen    = "Opening settings window"
	MsgSettingsFocus   = "Settings window already open, requesting focus"
	MsgSettingsLoaded  = "Settings loaded"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgOpenWindow      = "Opening month overview window"
	MsgTableSorted     = "Month overview sorted"
	MsgFeedPublished   = "Month feed published"
	MsgWorkerStart     = "Background worker started"
	MsgWorkerStop      = "Background worker stopped"
	MsgDayChanged      = "Date changed, refreshing view"
	MsgPrefsApplied    = "Preferences applied"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyYear      = "year"
	LogKeyMonth     = "month"
	LogKeyDate      = "date"
	LogKeyWeeks     = "weeks"
	LogKeyPage      = "page"
	LogKeyPosition  = "position"
	LogKeyWeekOrder = "week_order"
	LogKeyWeekStart = "week_start"
	LogKeyValue     = "value"
	LogKeyCount     = "count"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"
	LogKeySortCol   = "sort_col"
	LogKeySortAsc   = "sort_asc"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyCommit  = "commit"
	LogKeyBuilt   = "built"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompMain    = "main"
	CompCLI     = "cli"
	CompI18n    = "i18n"
	CompWorker  = "worker"
	CompConfig  = "config"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2

	// LineHeightRatio converts a text size into the height of its line box.
	LineHeightRatio       = 1.4
	DefaultTextSizeTop    = 16
	DefaultTextSizeBottom = 10
	MarkerRadius          = 2
)
