package constants

// Pesan flash & error yang tampil ke pengguna
const (
	MsgMustLogin     = "Anda harus login terlebih dahulu!"
	MsgLoginSuccess  = "Login berhasil!"
	MsgLoginInvalid  = "Username atau password salah!"
	MsgLoginTooMany  = "Terlalu banyak percobaan login. Coba beberapa saat lagi."
	MsgServerError   = "Kesalahan server!"
	MsgUsernameEmpty = "Username wajib diisi!"
	MsgPasswordEmpty = "Password wajib diisi!"

	MsgSiswaCreated  = "Siswa berhasil ditambahkan!"
	MsgSiswaUpdated  = "Data siswa berhasil diupdate!"
	MsgSiswaDeleted  = "Siswa berhasil dihapus!"
	MsgSiswaNotFound = "Data siswa tidak ditemukan!"
	MsgPageNotFound  = "Halaman tidak ditemukan!"

	MsgNIKLength   = "NIK harus 16 digit!"
	MsgNIKNumeric  = "NIK hanya boleh angka!"
	MsgNIKTaken    = "NIK sudah digunakan!"
	MsgNISNLength  = "NISN harus 10 digit!"
	MsgNISNNumeric = "NISN hanya boleh angka!"
	MsgNISNTaken   = "NISN sudah digunakan!"

	MsgTglMasukEmpty      = "Tanggal masuk wajib diisi!"
	MsgTglMasukInvalid    = "Tanggal masuk tidak valid!"
	MsgTglMasukPastCutoff = "Tanggal masuk lewat batas!"
	MsgTglMasukEditCutoff = "Tanggal masuk tidak boleh melebihi batas!"
)

// Nama default saat sesi tidak menyimpan username
const DefaultDisplayName = "Admin"
