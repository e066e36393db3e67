package hostcpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAtLeastCascadeLake(t *testing.T) {
	cases := []struct {
		name  string
		model Model
		want  bool
	}{
		{"cascade lake first stepping", Model{Family: 6, Model: 0x55, Stepping: 5}, true},
		{"cascade lake later stepping", Model{Family: 6, Model: 0x55, Stepping: 7}, true},
		{"skylake-sp", Model{Family: 6, Model: 0x55, Stepping: 4}, false},
		{"newer model", Model{Family: 6, Model: 0x6a, Stepping: 0}, true},
		{"older model", Model{Family: 6, Model: 0x3f, Stepping: 2}, false},
		{"newer family", Model{Family: 7, Model: 0, Stepping: 0}, true},
		{"older family", Model{Family: 5, Model: 0xff, Stepping: 9}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.model.IsAtLeastCascadeLake())
		})
	}
}
