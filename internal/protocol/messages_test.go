package protocol

import "testing"

func TestLoginRequestFields(t *testing.T) {
	body := LoginRequest("admin", "6QNMIQGe")
	env, err := DecodeEnvelope(body)
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	if env.Raw["UserName"] != "admin" {
		t.Fatalf("UserName = %v", env.Raw["UserName"])
	}
	if env.Raw["PassWord"] != "6QNMIQGe" {
		t.Fatalf("PassWord = %v", env.Raw["PassWord"])
	}
	if env.Raw["LoginType"] != "DVRIP-Web" {
		t.Fatalf("LoginType = %v", env.Raw["LoginType"])
	}
}

func TestSimpleRequestEmbedsSessionIDHex(t *testing.T) {
	body := SimpleRequest(0x12, "OPNetKeyboard")
	env, err := DecodeEnvelope(body)
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	if env.Raw["SessionID"] != "0x00000012" {
		t.Fatalf("SessionID = %v", env.Raw["SessionID"])
	}
	if env.Raw["Name"] != "OPNetKeyboard" {
		t.Fatalf("Name = %v", env.Raw["Name"])
	}
}

func TestNetSnapRequestShape(t *testing.T) {
	body := NetSnapRequest(3)
	env, err := DecodeEnvelope(body)
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	opsnap, ok := env.Raw["OPSNAP"].(map[string]interface{})
	if !ok {
		t.Fatalf("OPSNAP field missing or wrong type: %v", env.Raw["OPSNAP"])
	}
	if opsnap["Channel"].(float64) != 3 {
		t.Fatalf("Channel = %v", opsnap["Channel"])
	}
}

func TestDecodeEnvelopeExtractsRetAndSessionID(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"Ret":100,"SessionID":"0x0000002a","Name":"LoginResp"}`))
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	if !env.RetOK || env.Ret != 100 {
		t.Fatalf("Ret = %d, RetOK = %v", env.Ret, env.RetOK)
	}
	if !env.HasSID || env.SessionID != 0x2a {
		t.Fatalf("SessionID = %#x, HasSID = %v", env.SessionID, env.HasSID)
	}
}

func TestDecodeEnvelopeToleratesMissingFields(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"Name":"AlarmInfo"}`))
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	if env.RetOK {
		t.Fatal("expected RetOK false when Ret is absent")
	}
	if env.HasSID {
		t.Fatal("expected HasSID false when SessionID is absent")
	}
}

func TestDecodeEnvelopeRejectsInvalidJSON(t *testing.T) {
	if _, err := DecodeEnvelope([]byte("not json")); err == nil {
		t.Fatal("expected an error for non-JSON payload")
	}
}

func TestKeepAliveAndGuardRequestNames(t *testing.T) {
	ka, err := DecodeEnvelope(KeepAliveRequest(1))
	if err != nil || ka.Raw["Name"] != "KeepAlive" {
		t.Fatalf("KeepAliveRequest: %v %v", ka.Raw["Name"], err)
	}
	gr, err := DecodeEnvelope(GuardRequest(1))
	if err != nil || gr.Raw["Name"] != "Guard" {
		t.Fatalf("GuardRequest: %v %v", gr.Raw["Name"], err)
	}
}
