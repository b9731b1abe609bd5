// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package packetparse

// Sample is a captured downlink packet used for smoke testing and demos
type Sample struct {
	Name string
	Hex  string
}

// Samples are packets captured from the spacecraft, one or more per
// message type
var Samples = []Sample{
	{
		Name: "attitude",
		Hex:  "574c39585a457d6e000021a5092702dfde585104042754e0f1aeb1b1b2e339ba39bf39af39a839173a5609823f80823f817f7f80777879777879e46a0000dd39bd39cb39af39b7390b3a5609823f81823f807f7f8077787977787970660000d439bb39c639a139ac39033a5609823f80823f807f7f80777879777879fc610000cf39b439bf399b39a639ff395609823f81823f807f7f80777879777879885d0000d539ac39ac399b39a939fb395609823f80823f807f7f8077787977787914590000a732529b2a569c2a5608150008155a9c295a9b305e9b305ea23e5e0000b8bf966e88d0864f8bc4b68a23f6a54b585f5f843d9dded0c2e252bdbe1ebd85",
	},
	{
		Name: "idle",
		Hex:  "574c39585a455136000020a10b1302dee4515d04042854f0b2afb3aeb13edfe3515f04042854f0b28f5a5757585657588d3400003ee2df5d5104042854f0e18f5a575758565758453100003edfe3515c04042854f0b28f5a575758565758fd2d00003ee1e4515f04042854f0b28f5a575758565758b52a00003ee3e05e5104042855f0e18f5a5757585657586d2700003edfe3515c04042854f0b28f5a575758565758252400003edfe337600404274ef0b28f5a575758565758dd20000008152a9c292a9b302e9b302ea23e2ec63e2ec63e2ea23e2e9b29019b291a9b2a0230f07b4a31312c9cf5121ed6feccc6d0181e9ebe63eba5e6b3d895eeb9f5c2f1",
	},
	{
		Name: "flash_burst_1",
		Hex:  "574c39585a454100000022970e3b02e2e05c5104042855f0e1b1b4b1b404040404040404040404040404040404040404040304040404040404040404040404040404040404040403060303d039c846d139c945d139c945d139c9450306030303060303b1b4b1b4a2a2a2a2a2a1a0a2a1a29ea1a2a29ea1afb3b3b2b1b3b0b30202020044634e3f47564e3f5b58493f42534e3c02020200020202007f7f807f7f807f7f807f7f807f7f807f7f807f7f80400000009b30009b3000a23e00c63e00c63e00a23e009b30009b3000a23e00c63e00c63e00a23e009b30009b300000c51d74120214a6769f810b5aa75f29027a5b147de21add293392058b7ef1cc0d",
	},
	{
		Name: "flash_burst_2",
		Hex:  "574c39585a454100000022970e3b02e2e05c5104042855f0e1b1b4b1b404040404040404040404040404040404040404040404040404040404040404040404040404040404040403060303d039c846d139c945d139c945d039c9450306030303060303b1b3b1b4a2a2a3a0a2a1a1a1a1a0a1a19fa19ea1b0b3afb2b2b3aeb4000000005365493f445b473f42564937425d493f00000000000000007f7f807f7f807f7f807f7f807f7f807f7f807f7f8043000000a23e00c63e00c63e00a23e009b30009b3000a23e00c63e00c63e00a23e009b30009b3000a23e00c63e000086738d6760a85099c7a5b6e5b992a95cc963c77022f07115f2c0e14e89cc0d1a",
	},
	{
		Name: "flash_cmp_1",
		Hex:  "574c39585a45d903000023960e2702e1e05a5104042855f0e1b1b3afb339483b300404a72ea138a3a4a3a439483b30777879c703000039483b300404a72ea138a3a4a3a439483b30777879c703000039483b300404a72ea138a3a4a3a439483b30777879c703000039483b300404a72ea138a3a4a3a439483b30777879c703000039483b300404a72ea138a3a4a3a439483b30777879c703000039483b300404a72ea138a3a4a3a439483b30777879c7030000a23e039b30039b3003a23e03c63e03c63e03a23e039b30039b3003a23e03c63e03c63e03a23e039b30030000152fafcdb4ee495ef2969c2216be05da81ca5049c402dbbcd21726b2101c06a4",
	},
	{
		Name: "flash_cmp_2",
		Hex:  "574c39585a458971000023960e2702e1dd605104042854f0e1adb1b0b23d483b300404a92ca238a3a3a2a43d483b30777879877000003a483b300404a82da336a3a3a1a43a483b30777879c76c00003844392d0404a92ca334a3a3a2a33844392d777879076900003947392d0404aa2ba335a2a3a1a43947392d777879476500003341362a0404aa2ba632a2a3a0a33341362a777879876100003541372b0404aa2ba532a3a3a0a33541372b777879c75d0000a23e60c63e60c63e60a23e609b291c9b294c9b2aff9c2a0c9c291ca732549b2a589c2a5808150108155c00002f20f771dba3610d533bf1305a4f516b748f0bcbb7a94be21c791449407d0df8",
	},
	{
		Name: "low_power_1",
		Hex:  "574c39585a45660000002c960e13018f38585904040057faffe7e7e7e71e9037585904040057f2f69a399a3987399b39a6398a397f7f80650000001ea327585904040058f2f69d399d398d39a039a8398c397f7f80510000001eb617585904040058f2f69839983989399a39a8398c397f7f803f0000001eb617585904040058f2f69e399e398c399739ab3989397f7f803e0000001eb716585904040058f2f6983998398c399839a8398c397f7f803d000000b44b00b34b00c64000a24000a240000815000815009b1aff9b2bff9b2aff9b1a000e02009b2b009b2a0000000000000000000000000000000000000000000000000000000000000000000000",
	},
	{
		Name: "low_power_2",
		Hex:  "574c39585a45f60b00002c960eff01b7c5585904040057e8ffe7e747471eb8c5585904040057e8f6a839a839a439ac39b739a4397f7f80f50b00001ec1c5585804040058e8f6a839a839a339a939ba39a4397f7f80e10b00001eb8c5585904040057e8f6a839a839a439ac39b739a4397f7f80f50b00001ec1c5585804040058e8f6a839a839a339a939ba39a4397f7f80e10b00001ecbc5585804040057e8f6a439a439a339a839ba39a0397f7f80cd0b00009b30079b31079c3107254607a73307a72907364e08b44c08ab34083b4b080815089b1aff9b2bff9b2aff00000000000000000000000000000000000000000000000000000000000000000000",
	},
	{
		Name: "low_power_test",
		Hex:  "574c39585a45671600002c9618ff04e1e25d5803032856f0e2c6b2a0b20ee3e35d5804042856f0e200000000c339b8390000b5397f7f80661600000ee3e35d5804042856f0e200000000c339b8390000b5397f7f80661600000ee3e35d5804042856f0e200000000c339b8390000b5397f7f80661600000ee3e35d5804042856f0e200000000c339b8390000b5397f7f80661600000ee3e35d5804042856f0e200000000c339b8390000b5397f7f80661600009c30009b2a009b2f009c2e009b2a009c30009b2f009c2e00573b00323d00323d06573b07b54a090e050000003f73fed7e2e664ec3eea86bc64849d141afd525558ca00a32d87879a23043592",
	},
}

// SampleByName returns the named sample
func SampleByName(name string) (Sample, bool) {
	for _, s := range Samples {
		if s.Name == name {
			return s, true
		}
	}
	return Sample{}, false
}
