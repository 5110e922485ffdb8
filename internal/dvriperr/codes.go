package dvriperr

// Device reply codes, taken from the Ret field the device sends on every
// JSON-bound response. CodeSuccess is the only non-error value; everything
// else is surfaced to the caller as a *Error of type Device.
const (
	CodeSuccess                     = 100
	CodeUnknownError                = 101
	CodeUnsupported                 = 102
	CodeIllegalRequest              = 103
	CodeUserAlreadyLoggedIn         = 104
	CodeUserNotLoggedIn             = 105
	CodeBadUsernameOrPassword       = 106
	CodeNoPermission                = 107
	CodeTimeout                     = 108
	CodeSearchFailed                = 109
	CodeSearchSuccessReturnAll      = 110
	CodeSearchSuccessReturnSome     = 111
	CodeUserAlreadyExists           = 112
	CodeUserDoesNotExist            = 113
	CodeGroupAlreadyExists          = 114
	CodeGroupDoesNotExist           = 115
	CodeMessageFormatError          = 117
	CodePtzProtocolNotSet           = 118
	CodeNoFileFound                 = 119
	CodeConfiguredToEnable          = 120
	CodeDigitalChannelNotConnected  = 121
	CodeSuccessNeedRestart          = 150
	CodeUserNotLoggedIn2            = 202
	CodeConfigurationDoesNotExist   = 607
	CodeConfigurationParsingError   = 608
)

var codeMessages = map[int]string{
	CodeSuccess:                    "success",
	CodeUnknownError:               "unknown error",
	CodeUnsupported:                "unsupported",
	CodeIllegalRequest:             "illegal request",
	CodeUserAlreadyLoggedIn:        "user already logged in",
	CodeUserNotLoggedIn:            "user not logged in",
	CodeBadUsernameOrPassword:      "bad username or password",
	CodeNoPermission:               "no permission",
	CodeTimeout:                    "timeout",
	CodeSearchFailed:               "search failed",
	CodeSearchSuccessReturnAll:     "search successful, returned all files",
	CodeSearchSuccessReturnSome:    "search successful, returned some files",
	CodeUserAlreadyExists:          "user already exists",
	CodeUserDoesNotExist:           "user doesn't exist",
	CodeGroupAlreadyExists:         "group already exists",
	CodeGroupDoesNotExist:          "group doesn't exist",
	CodeMessageFormatError:         "message format error",
	CodePtzProtocolNotSet:          "PTZ protocol not set",
	CodeNoFileFound:                "no file found",
	CodeConfiguredToEnable:         "configured to enable",
	CodeDigitalChannelNotConnected: "digital channel not connected",
	CodeSuccessNeedRestart:         "success, the device needs to be restarted",
	CodeUserNotLoggedIn2:           "user not logged in",
	CodeConfigurationDoesNotExist:  "configuration does not exist",
	CodeConfigurationParsingError:  "configuration parsing error",
}

// MessageForCode returns a short human-readable description of a device Ret
// code, falling back to a generic message for codes outside the known table.
func MessageForCode(code int) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return "unrecognized device error code"
}
