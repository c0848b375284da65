package fixjob

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainOf(t *testing.T) {
	assert.Equal(t, "example.de", domainOf("scan:example.de:20240901"))
	assert.Equal(t, "example.de", domainOf("scan:example.de"))
	assert.Equal(t, "s1", domainOf("s1"))
}
