package extensions

// Well-known TLS extension identifiers used to express a template's
// ExtensionOrder. Only six of these (ApplicationSettings, DelegatedCredential,
// CompressCertificate, Padding, StatusRequest, SCT) have codecs in this
// package; the rest are the host TLS stack's native extensions and are named
// here only so templates can refer to them by position, grounded on the
// teacher's internal/tls/fingerprint.go mapExtensionIDs switch.
const (
	IDServerName                   ID = 0
	IDStatusRequest                ID = 5
	IDSupportedGroups              ID = 10
	IDECPointFormats               ID = 11
	IDSignatureAlgorithms          ID = 13
	IDALPN                         ID = 16
	IDStatusRequestV2              ID = 17
	IDSCT                          ID = 18
	IDPadding                      ID = 21
	IDExtendedMasterSecret         ID = 23
	IDCompressCertificate          ID = 27
	IDSessionTicket                ID = 35
	IDPreSharedKey                 ID = 41
	IDSupportedVersions            ID = 43
	IDPSKKeyExchangeModes          ID = 45
	IDKeyShare                     ID = 51
	IDRenegotiationInfo            ID = 65281
	IDApplicationSettingsOld       ID = 17513
	IDApplicationSettings          ID = 17613
	IDDelegatedCredential          ID = 34
	IDEncryptedClientHelloGREASE   ID = 65037
)
