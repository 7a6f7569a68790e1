package serializer

import (
	"encoding/json"

	"github.com/ValentinKolb/kvql/lib/result"
	"github.com/ValentinKolb/kvql/rpc/common"
)

const contentTypeJSON = "application/json"

// NewJSONSerializer creates a new serializer using compact json encoding
func NewJSONSerializer() IResultSerializer {
	return &jsonSerializerImpl{}
}

// NewPrettyJSONSerializer creates a new serializer using indented json encoding
func NewPrettyJSONSerializer() IResultSerializer {
	return &jsonSerializerImpl{indent: "  "}
}

// jsonSerializerImpl implements the IResultSerializer interface using json encoding
type jsonSerializerImpl struct {
	indent string
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IResultSerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) Serialize(res result.Result) ([]byte, error) {
	return j.marshal(res)
}

func (j jsonSerializerImpl) SerializeError(resp common.ErrorResponse) ([]byte, error) {
	return j.marshal(resp)
}

func (j jsonSerializerImpl) ContentType() string {
	return contentTypeJSON
}

func (j jsonSerializerImpl) marshal(v any) ([]byte, error) {
	if j.indent == "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", j.indent)
}
