package consensushashing

import (
	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/AntiLogi/WaykiChain/domain/consensus/utils/hashes"
	"github.com/AntiLogi/WaykiChain/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// BlockHash returns the given block's hash
func BlockHash(block *externalapi.DomainBlock) *externalapi.DomainHash {
	return HeaderHash(block.Header)
}

// HeaderHash returns the given header's hash. It is recomputed from the
// current field values on every call, so a header whose height is changed
// with SetHeight gets a new identity.
func HeaderHash(header *externalapi.DomainBlockHeader) *externalapi.DomainHash {
	writer := hashes.NewBlockHashWriter()
	err := serialization.WriteHeader(writer, header)
	if err != nil {
		// It seems like this could only happen if the writer returned an error.
		// and this writer should never return an error (no allocations or possible failures)
		// the only non-writer error path here is unknown types in `WriteElement`
		panic(errors.Wrap(err, "this should never happen. Hash digest should never return an error"))
	}

	return writer.Finalize()
}
