package auth

import "testing"

func TestCookieCodecRoundTrip(t *testing.T) {
	codec := NewCookieCodec([]byte("test-secret"), 60, false)

	value := codec.Encode("token-123")
	token, ok := codec.Decode(value)
	if !ok {
		t.Fatal("expected valid signature to decode")
	}
	if token != "token-123" {
		t.Fatalf("unexpected token: %s", token)
	}
}

func TestCookieCodecRejectsTampering(t *testing.T) {
	codec := NewCookieCodec([]byte("test-secret"), 60, false)

	value := codec.Encode("token-123")
	tampered := "token-456" + value[len("token-123"):]
	if _, ok := codec.Decode(tampered); ok {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestCookieCodecRejectsWrongSecret(t *testing.T) {
	codec := NewCookieCodec([]byte("test-secret"), 60, false)
	other := NewCookieCodec([]byte("other-secret"), 60, false)

	if _, ok := other.Decode(codec.Encode("token-123")); ok {
		t.Fatal("expected signature from another secret to be rejected")
	}
}

func TestCookieCodecRejectsMalformedValues(t *testing.T) {
	codec := NewCookieCodec([]byte("test-secret"), 60, false)

	for _, value := range []string{"", "no-separator", ".sig-only", "token."} {
		if _, ok := codec.Decode(value); ok {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}
