package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by record type so different records never share
// an identifier.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// exactUUID is UUID without key normalisation; case and whitespace matter.
func exactUUID(key string) uuid.UUID {
	if key == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(false))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	}
	return uid
}

// LocaleStringUUID identifies a stored translation. Source and context are
// hashed verbatim since case and whitespace are significant there.
func LocaleStringUUID(name, language, msgContext, source string) uuid.UUID {
	return exactUUID("go-config-i18n:locale_string:" +
		strings.TrimSpace(name) + "\x1f" +
		strings.ToLower(strings.TrimSpace(language)) + "\x1f" +
		msgContext + "\x1f" +
		source)
}

// TermUUID identifies a taxonomy term by vocabulary and machine name.
func TermUUID(vocabulary, machineName string) uuid.UUID {
	return UUID("go-config-i18n:term:" +
		strings.ToLower(strings.TrimSpace(vocabulary)) + ":" +
		strings.ToLower(strings.TrimSpace(machineName)))
}

// UserUUID identifies a user record by its numeric UID.
func UserUUID(uid int64) uuid.UUID {
	return UUID("go-config-i18n:user:" + strconv.FormatInt(uid, 10))
}
