package protocol

import "testing"

func TestCommandTypeStringKnown(t *testing.T) {
	cases := map[CommandType]string{
		LoginReq:      "Login_Req",
		LoginResp:     "Login_Resp",
		KeepAliveReq:  "KeepAlive_Req",
		SysInfoResp:   "SysInfo_Resp",
		ConfigGetReq:  "ConfigGet_Req",
		GuardResp:     "Guard_Resp",
		AlarmReq:      "Alarm_Req",
		NetSnapResp:   "NetSnap_Resp",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", code, got, want)
		}
	}
}

func TestCommandTypeStringUnknownFallsBackToNumber(t *testing.T) {
	got := CommandType(9999).String()
	want := "CommandType(9999)"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
