package serializer

import (
	"bytes"

	"github.com/ValentinKolb/kvql/lib/result"
	"github.com/ValentinKolb/kvql/rpc/common"
	"gopkg.in/yaml.v3"
)

const contentTypeYAML = "application/yaml"

// NewYAMLSerializer creates a new serializer using yaml encoding.
// Field maps keep their order.
func NewYAMLSerializer() IResultSerializer {
	return &yamlSerializerImpl{}
}

// yamlSerializerImpl implements the IResultSerializer interface using yaml encoding
type yamlSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IResultSerializer)
// --------------------------------------------------------------------------

func (y yamlSerializerImpl) Serialize(res result.Result) ([]byte, error) {
	return y.marshal(res)
}

func (y yamlSerializerImpl) SerializeError(resp common.ErrorResponse) ([]byte, error) {
	return y.marshal(resp)
}

func (y yamlSerializerImpl) ContentType() string {
	return contentTypeYAML
}

func (y yamlSerializerImpl) marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
